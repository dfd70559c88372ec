// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package session implements a token-keyed session store on top of linhash.Table, the
// consumer sketched in the table's external interface: login/servicio/logout/clear.
package session

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/brevane/linhash/linhash"
	"github.com/brevane/linhash/eventlog"
)

// Session is one logged-in user's record.
type Session struct {
	Email     string
	Password  string
	CreatedAt time.Time
}

// Store is a mutex-guarded token -> Session map. linhash.Table is not safe for concurrent
// use on its own, so every method here acquires mu for the whole operation, including bulk
// operations like Sweep's ForEachRemoveIf call.
type Store struct {
	mu      sync.Mutex
	table   *linhash.Table[string, Session]
	ttl     time.Duration
	sink    eventlog.Sink
	onSplit func()
	onMerge func()
}

// New creates an empty Store with the given session TTL. A nil sink is replaced with
// eventlog.NoopSink{}. tableOpts are passed through to linhash.NewStringTable, letting a
// caller override the table's initial bucket count and split/merge load-factor band (see
// linhash.WithM0, linhash.WithFillFactors).
func New(ttl time.Duration, sink eventlog.Sink, tableOpts ...linhash.Option[string, Session]) *Store {
	if sink == nil {
		sink = eventlog.NoopSink{}
	}
	return &Store{
		table: linhash.NewStringTable[Session](tableOpts...),
		ttl:   ttl,
		sink:  sink,
	}
}

// SetObservers installs hooks invoked whenever the underlying table's bucket count changes
// as a side effect of Login, Logout, or Sweep: onSplit when it grows, onMerge when it
// shrinks. Either may be nil. Intended for a metrics.Collector to track split/merge counts
// that the table itself does not expose directly.
func (s *Store) SetObservers(onSplit, onMerge func()) {
	s.mu.Lock()
	s.onSplit = onSplit
	s.onMerge = onMerge
	s.mu.Unlock()
}

// notifyBucketChange compares the table's bucket count across a mutation and fires the
// matching observer once per bucket gained or lost (a bulk operation like ForEachRemoveIf
// can trigger more than one merge step). Must be called without s.mu held.
func (s *Store) notifyBucketChange(before, after uint64) {
	if after > before && s.onSplit != nil {
		for n := after - before; n > 0; n-- {
			s.onSplit()
		}
	} else if after < before && s.onMerge != nil {
		for n := before - after; n > 0; n-- {
			s.onMerge()
		}
	}
}

// GenerateToken returns an opaque session token, grounded on the original
// timestamp-plus-random-number scheme: a unique token never needs to be guessed, only to
// never collide in practice.
func GenerateToken() string {
	var r [8]byte
	if _, err := rand.Read(r[:]); err != nil {
		// crypto/rand failing here would mean the process has no usable entropy
		// source at all; fall back to the current time alone rather than return
		// an error from a function whose contract is "always returns a token".
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d_%d", time.Now().UnixNano(), binary.LittleEndian.Uint64(r[:]))
}

// Login creates a new session for email/password, stores it under a freshly generated
// token, and returns that token.
func (s *Store) Login(email, password string) string {
	token := GenerateToken()
	sess := Session{Email: email, Password: password, CreatedAt: time.Now()}
	s.mu.Lock()
	before := s.table.BucketCount()
	s.table.Insert(token, sess)
	after := s.table.BucketCount()
	s.mu.Unlock()
	s.notifyBucketChange(before, after)
	s.sink.Publish(eventlog.Event{Kind: eventlog.KindLogin, Token: token, Email: email,
		At: sess.CreatedAt})
	return token
}

// LookupResult reports the outcome of a Lookup.
type LookupResult int

const (
	// LookupFound indicates the token resolved to a live session.
	LookupFound LookupResult = iota
	// LookupNotFound indicates the token was never issued or was already removed.
	LookupNotFound
	// LookupExpired indicates the token resolved to a session older than the store's
	// TTL; the session has already been removed.
	LookupExpired
)

// Lookup returns the session for token, checking expiry against the store's TTL. If the
// session has expired, it is removed and LookupExpired is returned.
func (s *Store) Lookup(token string) (Session, LookupResult) {
	s.mu.Lock()
	sess, ok := s.table.TryGet(token)
	if !ok {
		s.mu.Unlock()
		return Session{}, LookupNotFound
	}
	if time.Since(sess.CreatedAt) > s.ttl {
		before := s.table.BucketCount()
		s.table.Remove(token)
		after := s.table.BucketCount()
		s.mu.Unlock()
		s.notifyBucketChange(before, after)
		return Session{}, LookupExpired
	}
	s.mu.Unlock()
	return sess, LookupFound
}

// Logout removes token's session, returning true if it was present.
func (s *Store) Logout(token string) bool {
	s.mu.Lock()
	before := s.table.BucketCount()
	removed := s.table.Remove(token)
	after := s.table.BucketCount()
	s.mu.Unlock()
	s.notifyBucketChange(before, after)
	if removed {
		s.sink.Publish(eventlog.Event{Kind: eventlog.KindLogout, Token: token, At: time.Now()})
	}
	return removed
}

// Clear removes every session.
func (s *Store) Clear() {
	s.mu.Lock()
	s.table.Clear()
	s.mu.Unlock()
}

// Size returns the number of live sessions.
func (s *Store) Size() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Size()
}

// BucketCount returns the underlying table's active logical bucket count, for metrics.
func (s *Store) BucketCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.BucketCount()
}

// LoadFactor returns the underlying table's current load factor, for metrics.
func (s *Store) LoadFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.LoadFactor()
}

// DebugDump writes the underlying table's diagnostic snapshot, for parity with the
// original implementation's habit of printing the table after every mutating call.
func (s *Store) DebugDump(label string, w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.DebugDump(w, label)
}
