// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brevane/linhash/linhash"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Info(args ...interface{})                 { l.t.Log(args...) }
func (l testLogger) Infof(format string, args ...interface{}) { l.t.Logf(format, args...) }
func (l testLogger) Error(args ...interface{})                { l.t.Log(args...) }
func (l testLogger) Errorf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}
func (l testLogger) Fatal(args ...interface{})                 { l.t.Fatal(args...) }
func (l testLogger) Fatalf(format string, args ...interface{}) { l.t.Fatalf(format, args...) }

func TestNewWatcherLoadsInitialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	if err := os.WriteFile(path, []byte("ProductCode;Category\nPROD000001;Electronics\n"), 0o644); err != nil {
		t.Fatalf("writing initial catalog: %v", err)
	}

	var got *linhash.Table[string, string]
	w, err := NewWatcher(path, testLogger{t}, func(tbl *linhash.Table[string, string]) {
		got = tbl
	})
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	defer w.fsw.Close()

	if got == nil || got.Size() != 1 {
		t.Fatalf("initial onReload callback did not receive a 1-row table, got %+v", got)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	if err := os.WriteFile(path, []byte("ProductCode;Category\nPROD000001;Electronics\n"), 0o644); err != nil {
		t.Fatalf("writing initial catalog: %v", err)
	}

	reloads := make(chan *linhash.Table[string, string], 4)
	w, err := NewWatcher(path, testLogger{t}, func(tbl *linhash.Table[string, string]) {
		reloads <- tbl
	})
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}

	<-reloads // initial load

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	if err := os.WriteFile(path,
		[]byte("ProductCode;Category\nPROD000001;Electronics\nPROD000002;Books\n"), 0o644); err != nil {
		t.Fatalf("rewriting catalog: %v", err)
	}

	select {
	case tbl := <-reloads:
		if tbl.Size() != 2 {
			t.Fatalf("reloaded table has %d entries, want 2", tbl.Size())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after write")
	}
}
