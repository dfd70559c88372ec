// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package linhash

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/dchest/siphash"
)

// keyedHasher holds a per-table random 128-bit SipHash key. Seeding the key randomly at
// construction, rather than using a fixed constant, avoids making the table's chain
// lengths predictable to a caller who controls the keys being inserted.
type keyedHasher struct {
	k0, k1 uint64
}

func newKeyedHasher() keyedHasher {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand.Read only fails if the system's entropy source is
		// unavailable, which is unrecoverable for a process that needs
		// randomness at all; fall back to a fixed key rather than leaving
		// k0/k1 zeroed silently.
		copy(seed[:], "linhashdefaultseed")
	}
	return keyedHasher{
		k0: binary.LittleEndian.Uint64(seed[0:8]),
		k1: binary.LittleEndian.Uint64(seed[8:16]),
	}
}

func (h keyedHasher) hashBytes(b []byte) uint64 {
	return siphash.Hash(h.k0, h.k1, b)
}

// NewStringTable creates a Table keyed by strings, hashed with a per-table random SipHash
// key.
func NewStringTable[V any](opts ...Option[string, V]) *Table[string, V] {
	h := newKeyedHasher()
	return New[string, V](
		func(k string) uint64 { return h.hashBytes([]byte(k)) },
		func(a, b string) bool { return a == b },
		opts...,
	)
}

// NewInt64Table creates a Table keyed by int64, hashed with a per-table random SipHash key.
func NewInt64Table[V any](opts ...Option[int64, V]) *Table[int64, V] {
	h := newKeyedHasher()
	return New[int64, V](
		func(k int64) uint64 {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(k))
			return h.hashBytes(buf[:])
		},
		func(a, b int64) bool { return a == b },
		opts...,
	)
}
