// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

import (
	"fmt"
	"math"
	"testing"
)

func TestInsertGrowthAndAddressing(t *testing.T) {
	tbl := NewStringTable[int]()
	for i := 1; i <= 100; i++ {
		tbl.Insert(fmt.Sprintf("PROD%06d", i), i)
	}
	if got := tbl.Size(); got != 100 {
		t.Fatalf("Size() = %d, want 100", got)
	}
	minBuckets := uint64(math.Ceil(100 / DefaultMaxFillFactor))
	if got := tbl.BucketCount(); got < minBuckets {
		t.Fatalf("BucketCount() = %d, want >= %d", got, minBuckets)
	}
	for i := 1; i <= 100; i++ {
		key := fmt.Sprintf("PROD%06d", i)
		v, err := tbl.Get(key)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", key, err)
		}
		if v != i {
			t.Fatalf("Get(%q) = %d, want %d", key, v, i)
		}
	}
	checkInvariants(t, tbl)
}

func TestShrinkRoundTrip(t *testing.T) {
	tbl := NewStringTable[int]()
	for i := 0; i < 1000; i++ {
		tbl.Insert(fmt.Sprintf("key-%d", i), i)
	}
	for i := 0; i < 1000; i++ {
		if !tbl.Remove(fmt.Sprintf("key-%d", i)) {
			t.Fatalf("Remove(key-%d) = false, want true", i)
		}
	}
	if got := tbl.Size(); got != 0 {
		t.Fatalf("Size() = %d, want 0", got)
	}
	if got := tbl.BucketCount(); got != DefaultM0 {
		t.Fatalf("BucketCount() = %d, want %d", got, DefaultM0)
	}
	if got := tbl.capacity; got != DefaultM0 {
		t.Fatalf("capacity = %d, want %d", got, DefaultM0)
	}
}

func TestOverwrite(t *testing.T) {
	tbl := NewStringTable[int]()
	tbl.Insert("a", 1)
	tbl.Insert("a", 2)
	tbl.Insert("a", 3)
	if got := tbl.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1", got)
	}
	v, err := tbl.Get("a")
	if err != nil {
		t.Fatalf("Get(a) returned error: %v", err)
	}
	if v != 3 {
		t.Fatalf("Get(a) = %d, want 3", v)
	}
}

func TestMissingKey(t *testing.T) {
	tbl := NewStringTable[int]()
	if tbl.Contains("x") {
		t.Fatal("Contains(x) = true on empty table")
	}
	if _, ok := tbl.TryGet("x"); ok {
		t.Fatal("TryGet(x) = (_, true) on empty table")
	}
	if _, err := tbl.Get("x"); err == nil {
		t.Fatal("Get(x) returned nil error on empty table")
	}
	if tbl.Remove("x") {
		t.Fatal("Remove(x) = true on empty table")
	}
}

func TestBucketSizeOutOfRange(t *testing.T) {
	tbl := NewStringTable[int]()
	if _, err := tbl.BucketSize(tbl.BucketCount()); err == nil {
		t.Fatal("BucketSize(BucketCount()) returned nil error")
	}
}

func TestBulkSweep(t *testing.T) {
	tbl := NewStringTable[int]()
	for i := 0; i < 20; i++ {
		tbl.Insert(fmt.Sprintf("token-%d", i), i)
	}
	removed := tbl.ForEachRemoveIf(func(_ string, v int) bool { return v < 20 })
	if removed != 20 {
		t.Fatalf("ForEachRemoveIf removed %d entries, want 20", removed)
	}
	if got := tbl.Size(); got != 0 {
		t.Fatalf("Size() = %d after sweep, want 0", got)
	}
}

func TestChurnUnderThreshold(t *testing.T) {
	tbl := NewStringTable[int]()
	const n = 500
	for i := 0; i < n; i++ {
		tbl.Insert(fmt.Sprintf("churn-%d", i), i)
		checkInvariants(t, tbl)
	}
	for i := n - 1; i >= 0; i-- {
		tbl.Remove(fmt.Sprintf("churn-%d", i))
		checkInvariants(t, tbl)
	}
}

func TestClearPreservesShape(t *testing.T) {
	tbl := NewStringTable[int]()
	for i := 0; i < 200; i++ {
		tbl.Insert(fmt.Sprintf("k-%d", i), i)
	}
	bucketsBefore, capacityBefore := tbl.BucketCount(), tbl.capacity
	tbl.Clear()
	if got := tbl.Size(); got != 0 {
		t.Fatalf("Size() = %d after Clear, want 0", got)
	}
	if tbl.BucketCount() != bucketsBefore {
		t.Fatalf("BucketCount() changed by Clear: got %d, want %d",
			tbl.BucketCount(), bucketsBefore)
	}
	if tbl.capacity != capacityBefore {
		t.Fatalf("capacity changed by Clear: got %d, want %d", tbl.capacity, capacityBefore)
	}
}

func TestIterateBucket(t *testing.T) {
	tbl := NewStringTable[int]()
	tbl.Insert("only", 42)
	b := tbl.addressedBucket(tbl.hash("only"))
	it, err := tbl.IterateBucket(b)
	if err != nil {
		t.Fatalf("IterateBucket(%d) returned error: %v", b, err)
	}
	found := false
	for it.HasNext() {
		k, v, err := it.Next()
		if err != nil {
			t.Fatalf("Next() returned error: %v", err)
		}
		if k == "only" && v == 42 {
			found = true
		}
	}
	if !found {
		t.Fatal("did not find inserted key while iterating its bucket")
	}
	if _, _, err := it.Next(); err == nil {
		t.Fatal("Next() on exhausted iterator returned nil error")
	}
}

// checkInvariants asserts the load-factor band, sum law, and addressing law hold for tbl.
func checkInvariants(t *testing.T, tbl *Table[string, int]) {
	t.Helper()
	if tbl.capacity > tbl.m0 && tbl.bucketCount > 0 {
		lf := tbl.LoadFactor()
		if tbl.dataCount > 0 && (lf < tbl.lowerBound-0.5 || lf > tbl.maxFillFactor+0.5) {
			t.Fatalf("load factor %.3f far outside band [%.2f, %.2f]",
				lf, tbl.lowerBound, tbl.maxFillFactor)
		}
	}
	var sum uint64
	for b := uint64(0); b < tbl.bucketCount; b++ {
		size, err := tbl.BucketSize(b)
		if err != nil {
			t.Fatalf("BucketSize(%d) returned error: %v", b, err)
		}
		sum += size
		for n := tbl.buckets[b].head; n != nil; n = n.next {
			if got := tbl.addressedBucket(tbl.hash(n.key)); got != b {
				t.Fatalf("key %q stored in bucket %d but addresses to %d",
					n.key, b, got)
			}
		}
	}
	if sum != tbl.dataCount {
		t.Fatalf("sum of bucket sizes = %d, want dataCount = %d", sum, tbl.dataCount)
	}
}
