// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

// split executes exactly one split step: it may grow the physical bucket array, activates
// one new logical bucket, and redistributes bucket p's chain between itself and the newly
// activated bucket.
//
// The new bucket array is always built in full before being installed, so a panic from make
// (the only failure mode of allocation in Go) leaves the table exactly as it was before the
// call.
func (t *Table[K, V]) split() {
	if t.p == 0 {
		t.grow()
	}

	newIdx := t.bucketCount
	t.bucketCount++

	old := &t.buckets[t.p]
	var keep *node[K, V]
	var keepSize uint64
	for n := old.head; n != nil; {
		next := n.next
		t.visited++
		if t.extendedIndex(t.hash(n.key)) == t.p {
			n.next = keep
			keep = n
			keepSize++
		} else {
			nb := &t.buckets[newIdx]
			n.next = nb.head
			nb.head = n
			nb.size++
		}
		n = next
	}
	old.head = keep
	old.size = keepSize

	t.p++
	if t.p == t.m0<<t.i {
		t.i++
		t.p = 0
	}
}

// grow doubles the physical bucket array, preserving every existing chain.
func (t *Table[K, V]) grow() {
	grown := make([]bucket[K, V], t.capacity*2)
	copy(grown, t.buckets)
	t.buckets = grown
	t.capacity *= 2
}

// merge executes exactly one merge step: it retreats the split pointer, folds the last
// logical bucket's chain into the bucket the pointer now names, deactivates that last
// bucket, and shrinks the physical array if the retreat closed out a round.
//
// Callers must only invoke merge when capacity > m0; merging at the minimum shape would
// violate the floor the table guarantees.
//
// As in split, the halved bucket array is allocated before any table field changes.
func (t *Table[K, V]) merge() {
	i, p := t.i, t.p
	if p == 0 {
		i--
		p = t.m0 << i
	}
	p--
	var shrunk []bucket[K, V]
	if p == 0 {
		shrunk = make([]bucket[K, V], t.capacity/2)
	}
	t.i, t.p = i, p

	last := t.bucketCount - 1
	lastBucket := &t.buckets[last]
	dst := &t.buckets[t.p]
	if dst.head == nil {
		dst.head = lastBucket.head
		dst.size = lastBucket.size
	} else {
		tail := dst.head
		for tail.next != nil {
			t.visited++
			tail = tail.next
		}
		tail.next = lastBucket.head
		dst.size += lastBucket.size
	}
	lastBucket.head = nil
	lastBucket.size = 0
	t.bucketCount--

	if shrunk != nil {
		t.shrink(shrunk)
	}
}

// shrink installs shrunk, a preallocated array of half the current capacity, as the
// physical bucket array, discarding the now-unused upper half (which is always empty by
// the time shrink runs).
func (t *Table[K, V]) shrink(shrunk []bucket[K, V]) {
	copy(shrunk, t.buckets[:t.capacity/2])
	t.buckets = shrunk
	t.capacity /= 2
}
