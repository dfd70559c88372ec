// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

import "github.com/brevane/linhash/errs"

// BucketIterator walks the chain of a single logical bucket in chain order. It is lazy,
// finite, and not restartable; it is invalidated by any Insert or Remove on the owning
// table performed while the iterator is live.
type BucketIterator[K any, V any] struct {
	t    *Table[K, V]
	next *node[K, V]
}

// IterateBucket returns an iterator over bucket b's chain, or errs.NewIndexOutOfRange if b
// is outside [0, BucketCount()).
func (t *Table[K, V]) IterateBucket(b uint64) (*BucketIterator[K, V], error) {
	if b >= t.bucketCount {
		return nil, errs.NewIndexOutOfRange(b, t.bucketCount)
	}
	return &BucketIterator[K, V]{t: t, next: t.buckets[b].head}, nil
}

// HasNext reports whether Next can be called again.
func (it *BucketIterator[K, V]) HasNext() bool {
	return it.next != nil
}

// Next returns the next key/value pair in the bucket, or errs.NewIteratorExhausted if the
// iterator is already exhausted.
func (it *BucketIterator[K, V]) Next() (K, V, error) {
	if it.next == nil {
		var k K
		var v V
		return k, v, errs.NewIteratorExhausted()
	}
	n := it.next
	it.t.visited++
	it.next = n.next
	return n.key, n.value, nil
}
