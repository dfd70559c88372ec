// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package linhash implements a dynamic chained linear hashing table: an associative
// container that grows and shrinks one bucket at a time instead of rehashing the whole
// table, keeping the average chain length bounded by a load-factor band.
//
// A Table is not safe for concurrent use. Embedders that need concurrent access must wrap
// every call (including iteration) in their own mutual-exclusion primitive; see the
// session package for an example.
package linhash

import "github.com/brevane/linhash/errs"

const (
	// DefaultM0 is the initial logical bucket count used when no override is supplied.
	DefaultM0 = 4
	// DefaultMaxFillFactor is the load factor above which a split is triggered.
	DefaultMaxFillFactor = 0.75
	// DefaultLowerBound is the load factor below which a merge is triggered.
	DefaultLowerBound = 0.40
)

type node[K any, V any] struct {
	key   K
	value V
	next  *node[K, V]
}

type bucket[K any, V any] struct {
	head *node[K, V]
	size uint64
}

// Table is a dynamic chained linear hashing table, generic over a hashable, comparable key
// type K and an arbitrary value type V.
type Table[K any, V any] struct {
	buckets []bucket[K, V]
	hash    func(K) uint64
	equal   func(K, K) bool

	m0            uint64
	i             uint64
	p             uint64
	bucketCount   uint64
	capacity      uint64
	dataCount     uint64
	maxFillFactor float64
	lowerBound    float64

	visited uint64
}

// Option configures a Table at construction time.
type Option[K any, V any] func(*Table[K, V])

// WithM0 overrides the initial logical bucket count. m0 must be a power of two; it is
// rounded up to the next power of two otherwise.
func WithM0[K any, V any](m0 uint64) Option[K, V] {
	return func(t *Table[K, V]) {
		if m0 == 0 {
			m0 = 1
		}
		t.m0 = nextPowerOfTwo(m0)
	}
}

// WithFillFactors overrides the split/merge load-factor band.
func WithFillFactors[K any, V any](lowerBound, maxFillFactor float64) Option[K, V] {
	return func(t *Table[K, V]) {
		t.lowerBound = lowerBound
		t.maxFillFactor = maxFillFactor
	}
}

// New creates an empty Table using the supplied hash and equality functions. hash need not
// have cryptographic quality; it only must be consistent with equal (equal(a, b) implies
// hash(a) == hash(b)).
func New[K any, V any](hash func(K) uint64, equal func(K, K) bool, opts ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		hash:          hash,
		equal:         equal,
		m0:            DefaultM0,
		maxFillFactor: DefaultMaxFillFactor,
		lowerBound:    DefaultLowerBound,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.bucketCount = t.m0
	t.capacity = t.m0
	t.buckets = make([]bucket[K, V], t.capacity)
	return t
}

func nextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// addressedBucket returns the logical bucket index a key with the given raw hash currently
// belongs to: h mod M0·2^i, or extendedIndex(h) if that bucket has already been split in
// the current round.
func (t *Table[K, V]) addressedBucket(h uint64) uint64 {
	curr := h % (t.m0 << t.i)
	if curr < t.p {
		return h % (t.m0 << (t.i + 1))
	}
	return curr
}

func (t *Table[K, V]) extendedIndex(h uint64) uint64 {
	return h % (t.m0 << (t.i + 1))
}

// Insert adds k/v to the table, overwriting the existing value if k is already present.
// If the resulting load factor exceeds the maximum fill factor, Insert runs split steps,
// one bucket at a time, until it no longer does.
func (t *Table[K, V]) Insert(k K, v V) {
	h := t.hash(k)
	idx := t.addressedBucket(h)
	b := &t.buckets[idx]
	for n := b.head; n != nil; n = n.next {
		t.visited++
		if t.equal(n.key, k) {
			n.value = v
			return
		}
	}
	b.head = &node[K, V]{key: k, value: v, next: b.head}
	b.size++
	t.dataCount++
	for float64(t.dataCount)/float64(t.bucketCount) > t.maxFillFactor {
		t.split()
	}
}

// Get returns the value associated with k, or errs.NewKeyNotFound if k is absent.
func (t *Table[K, V]) Get(k K) (V, error) {
	v, ok := t.TryGet(k)
	if !ok {
		var zero V
		return zero, errs.NewKeyNotFound(k)
	}
	return v, nil
}

// TryGet returns the value associated with k and true, or the zero value and false if k is
// absent.
func (t *Table[K, V]) TryGet(k K) (V, bool) {
	h := t.hash(k)
	idx := t.addressedBucket(h)
	for n := t.buckets[idx].head; n != nil; n = n.next {
		t.visited++
		if t.equal(n.key, k) {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present in the table.
func (t *Table[K, V]) Contains(k K) bool {
	_, ok := t.TryGet(k)
	return ok
}

// Remove deletes k from the table, returning true if it was present. While the resulting
// load factor is below the lower bound and the table is above its minimum shape, Remove
// runs merge steps, one bucket at a time.
func (t *Table[K, V]) Remove(k K) bool {
	h := t.hash(k)
	idx := t.addressedBucket(h)
	b := &t.buckets[idx]
	var prev *node[K, V]
	for n := b.head; n != nil; n = n.next {
		t.visited++
		if t.equal(n.key, k) {
			if prev == nil {
				b.head = n.next
			} else {
				prev.next = n.next
			}
			b.size--
			t.dataCount--
			for t.capacity > t.m0 &&
				float64(t.dataCount)/float64(t.bucketCount) < t.lowerBound {
				t.merge()
			}
			return true
		}
		prev = n
	}
	return false
}

// Clear removes every entry from the table. The allocated shape (bucket count, capacity,
// split state) is retained so the table can be reused without immediately re-growing.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket[K, V]{}
	}
	t.dataCount = 0
}

// Size returns the number of entries currently stored.
func (t *Table[K, V]) Size() uint64 {
	return t.dataCount
}

// BucketCount returns the number of active logical buckets.
func (t *Table[K, V]) BucketCount() uint64 {
	return t.bucketCount
}

// BucketSize returns the number of entries chained off logical bucket b, or
// errs.NewIndexOutOfRange if b is outside [0, BucketCount()).
func (t *Table[K, V]) BucketSize(b uint64) (uint64, error) {
	if b >= t.bucketCount {
		return 0, errs.NewIndexOutOfRange(b, t.bucketCount)
	}
	return t.buckets[b].size, nil
}

// LoadFactor returns the current Size()/BucketCount() ratio.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.dataCount) / float64(t.bucketCount)
}
