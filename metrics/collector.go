// Copyright (c) 2017 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package metrics exports the session table's health as Prometheus metrics, served
// alongside the monitor package's debug pages.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Table is the subset of linhash.Table's diagnostics a Collector needs. session.Store
// implements it via its own accessor methods.
type Table interface {
	Size() uint64
	BucketCount() uint64
	LoadFactor() float64
}

// Collector exports a Table's bucket count, entry count, and load factor, plus
// monotonically increasing split/merge counters an embedder updates as it observes them.
type Collector struct {
	table   Table
	splits  prometheus.Counter
	merges  prometheus.Counter
	size    *prometheus.Desc
	buckets *prometheus.Desc
	load    *prometheus.Desc
}

// NewCollector creates a Collector over table.
func NewCollector(table Table) *Collector {
	return &Collector{
		table: table,
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linhash_splits_total",
			Help: "Total number of bucket splits performed.",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "linhash_merges_total",
			Help: "Total number of bucket merges performed.",
		}),
		size: prometheus.NewDesc("linhash_data_count",
			"Number of entries currently stored.", nil, nil),
		buckets: prometheus.NewDesc("linhash_bucket_count",
			"Number of active logical buckets.", nil, nil),
		load: prometheus.NewDesc("linhash_load_factor",
			"Current entries-per-bucket ratio.", nil, nil),
	}
}

// ObserveSplit increments the split counter. Callers invoke this when they know a split
// occurred (e.g. session.Store tracking BucketCount growth across an Insert).
func (c *Collector) ObserveSplit() {
	c.splits.Inc()
}

// ObserveMerge increments the merge counter.
func (c *Collector) ObserveMerge() {
	c.merges.Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.buckets
	ch <- c.load
	c.splits.Describe(ch)
	c.merges.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(c.table.Size()))
	ch <- prometheus.MustNewConstMetric(c.buckets, prometheus.GaugeValue,
		float64(c.table.BucketCount()))
	ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, c.table.LoadFactor())
	c.splits.Collect(ch)
	c.merges.Collect(ch)
}
