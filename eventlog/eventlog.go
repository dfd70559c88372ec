// Copyright (C) 2016  Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package eventlog publishes session lifecycle events (login, logout, expiry) to an
// observational sink, entirely separate from the linhash table's own state.
package eventlog

import "time"

// Kind identifies what happened to a session.
type Kind string

const (
	// KindLogin is published when a new session is created.
	KindLogin Kind = "login"
	// KindLogout is published when a session is explicitly removed.
	KindLogout Kind = "logout"
	// KindExpire is published when the sweeper removes one or more expired sessions.
	KindExpire Kind = "expire"
)

// Event describes one session lifecycle transition.
type Event struct {
	Kind  Kind      `json:"kind"`
	Token string    `json:"token,omitempty"`
	Email string    `json:"email,omitempty"`
	At    time.Time `json:"at"`
}

// Sink receives session lifecycle events. Publish must not block the caller for long; a
// slow or unavailable sink should drop events rather than stall session operations.
type Sink interface {
	Publish(Event)
}

// NoopSink discards every event. It is the default Sink when no external event pipeline is
// configured.
type NoopSink struct{}

// Publish discards ev.
func (NoopSink) Publish(Event) {}
