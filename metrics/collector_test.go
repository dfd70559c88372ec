// Copyright (c) 2017 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeTable struct {
	size, buckets uint64
	load          float64
}

func (f fakeTable) Size() uint64        { return f.size }
func (f fakeTable) BucketCount() uint64 { return f.buckets }
func (f fakeTable) LoadFactor() float64 { return f.load }

func TestCollectorExportsGauges(t *testing.T) {
	c := NewCollector(fakeTable{size: 42, buckets: 8, load: 5.25})
	c.ObserveSplit()
	c.ObserveMerge()

	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)

	values := map[string]float64{}
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		name := m.Desc().String()
		switch {
		case pb.Gauge != nil:
			values[name] = pb.Gauge.GetValue()
		case pb.Counter != nil:
			values[name] = pb.Counter.GetValue()
		}
	}
	if len(values) != 5 {
		t.Fatalf("Collect emitted %d distinct metrics, want 5", len(values))
	}
}

func TestDescribeEmitsFiveDescriptors(t *testing.T) {
	c := NewCollector(fakeTable{})
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)
	var n int
	for range ch {
		n++
	}
	if n != 5 {
		t.Fatalf("Describe emitted %d descriptors, want 5", n)
	}
}
