// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// VisitedBuckets returns the running count of node visits performed by Insert, Get, TryGet,
// Remove, split, merge, and iteration. The name is inherited as-is from the original
// implementation this table is modeled on, which counts node inspections under the same
// name despite it not counting buckets.
func (t *Table[K, V]) VisitedBuckets() uint64 {
	return t.visited
}

// DebugDump writes a human-readable snapshot of the table's controller state and per-bucket
// contents to w. It never mutates the table and does not count toward VisitedBuckets.
func (t *Table[K, V]) DebugDump(w io.Writer, label string) {
	fmt.Fprintf(w, "%s: M0=%d i=%d p=%d bucketcount=%d capacity=%d datacount=%d load=%.3f\n",
		label, t.m0, t.i, t.p, t.bucketCount, t.capacity, t.dataCount, t.LoadFactor())

	keys := make([]string, 0, t.dataCount)
	for b := uint64(0); b < t.bucketCount; b++ {
		for n := t.buckets[b].head; n != nil; n = n.next {
			keys = append(keys, fmt.Sprintf("%v", n.key))
		}
	}
	slices.Sort(keys)
	fmt.Fprintf(w, "  keys (%d): %v\n", len(keys), keys)

	for b := uint64(0); b < t.bucketCount; b++ {
		fmt.Fprintf(w, "  bucket %d (size=%d):", b, t.buckets[b].size)
		for n := t.buckets[b].head; n != nil; n = n.next {
			fmt.Fprintf(w, " %v", n.key)
		}
		fmt.Fprintln(w)
	}
}
