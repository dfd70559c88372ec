// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

// ForEachRemoveIf evaluates pred against every entry, collects the keys for which pred
// returns true, then removes each collected key. Splitting collection and removal into two
// phases means pred never observes a table that is mid-mutation, and the split/merge steps
// Remove may trigger as the table shrinks are transparent to the caller.
//
// pred must not mutate t.
func (t *Table[K, V]) ForEachRemoveIf(pred func(K, V) bool) uint64 {
	var toRemove []K
	for b := uint64(0); b < t.bucketCount; b++ {
		for n := t.buckets[b].head; n != nil; n = n.next {
			t.visited++
			if pred(n.key, n.value) {
				toRemove = append(toRemove, n.key)
			}
		}
	}
	var removed uint64
	for _, k := range toRemove {
		if t.Remove(k) {
			removed++
		}
	}
	return removed
}
