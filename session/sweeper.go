// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package session

import (
	"context"
	"time"

	"github.com/brevane/linhash/eventlog"
	"github.com/brevane/linhash/logger"
)

// Sweep performs one pass over the store, removing every session older than the store's
// TTL, and returns the number removed. It holds the store's lock for the entire pass, as
// required of any embedder calling into a linhash.Table's bulk operations.
func (s *Store) Sweep() uint64 {
	now := time.Now()
	s.mu.Lock()
	before := s.table.BucketCount()
	removed := s.table.ForEachRemoveIf(func(token string, sess Session) bool {
		return now.Sub(sess.CreatedAt) > s.ttl
	})
	after := s.table.BucketCount()
	s.mu.Unlock()
	s.notifyBucketChange(before, after)
	return removed
}

// RunSweeper runs Sweep every interval until ctx is canceled. Unlike the detached,
// never-joined cleanup thread it is modeled on, this goroutine is meant to be started
// under an errgroup.Group so its lifetime is tied to the rest of the process and it can be
// waited on during shutdown.
func RunSweeper(ctx context.Context, s *Store, interval time.Duration, log logger.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n := s.Sweep()
			if n > 0 {
				log.Infof("sweeper removed %d expired session(s)", n)
				s.sink.Publish(eventlog.Event{Kind: eventlog.KindExpire, At: time.Now()})
			}
		}
	}
}
