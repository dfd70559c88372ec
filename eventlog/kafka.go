// Copyright (C) 2016  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package eventlog

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/Shopify/sarama"
	"github.com/aristanetworks/glog"
)

// KafkaSink publishes Events to a Kafka topic as an async producer, in the same
// start/write/stop shape the rest of this corpus uses for its Kafka producers.
type KafkaSink struct {
	topic    string
	producer sarama.AsyncProducer
	events   chan Event
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewKafkaSink creates a KafkaSink publishing to topic on the given brokers. Start must be
// called before Publish will deliver anything.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}
	cfg.ClientID = hostname
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaSink{
		topic:    topic,
		producer: producer,
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}, nil
}

// Start begins forwarding published events to Kafka. Non-blocking.
func (s *KafkaSink) Start() {
	s.wg.Add(3)
	go s.handleSuccesses()
	go s.handleErrors()
	go s.run()
}

func (s *KafkaSink) run() {
	defer s.wg.Done()
	for {
		select {
		case ev, open := <-s.events:
			if !open {
				return
			}
			s.produce(ev)
		case <-s.done:
			return
		}
	}
}

// Publish enqueues ev for delivery. It drops the event rather than blocking if the
// internal buffer is full, matching Sink's documented best-effort contract.
func (s *KafkaSink) Publish(ev Event) {
	select {
	case s.events <- ev:
	default:
		glog.V(9).Infof("eventlog: dropping event, buffer full: %+v", ev)
	}
}

// Stop stops forwarding, closes the underlying Kafka producer and waits for the sink's
// goroutines to exit. Events still buffered when Stop is called are not delivered.
func (s *KafkaSink) Stop() {
	close(s.done)
	s.producer.Close()
	s.wg.Wait()
}

func (s *KafkaSink) produce(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		glog.Errorf("eventlog: failed to encode event: %v", err)
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(ev.Token),
		Value: sarama.ByteEncoder(payload),
	}
	select {
	case s.producer.Input() <- msg:
	case <-s.done:
	}
}

func (s *KafkaSink) handleSuccesses() {
	defer s.wg.Done()
	for msg := range s.producer.Successes() {
		glog.V(9).Infof("eventlog: published to Kafka: %v", msg)
	}
}

func (s *KafkaSink) handleErrors() {
	defer s.wg.Done()
	for err := range s.producer.Errors() {
		glog.Errorf("eventlog: Kafka publish error: %v", err)
	}
}
