// Copyright (c) 2015 Arista Networks, Inc.  All rights reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package catalog

import (
	"context"
	"path/filepath"

	"github.com/aristanetworks/fsnotify"
	"github.com/brevane/linhash/linhash"
	"github.com/brevane/linhash/logger"
	"github.com/cenkalti/backoff/v4"
)

// Watcher reloads a catalog file whenever it changes on disk and hands the new table to a
// callback. It watches the file's containing directory (matching how nsWatcher watches a
// namespace file's directory) so it can also pick up the file's initial creation.
type Watcher struct {
	path     string
	logger   logger.Logger
	fsw      *fsnotify.Watcher
	onReload func(*linhash.Table[string, string])
}

// NewWatcher creates a Watcher for path. It performs an initial load and invokes onReload
// with the result before returning.
func NewWatcher(path string, log logger.Logger, onReload func(*linhash.Table[string, string])) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{path: path, logger: log, fsw: fsw, onReload: onReload}
	if err := w.reload(); err != nil {
		log.Infof("initial catalog load of %s failed: %v", path, err)
	}
	return w, nil
}

// reload loads the catalog with a transient-failure retry, grounded on the same
// exponential-backoff pattern used to retry broken gNMI streams elsewhere in this corpus.
func (w *Watcher) reload() error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	var tbl *linhash.Table[string, string]
	operation := func() error {
		t, err := Load(w.path)
		if err != nil {
			return err
		}
		tbl = t
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithMaxRetries(bo, 5)); err != nil {
		return err
	}
	w.onReload(tbl)
	return nil
}

// Watch blocks, reloading the catalog on every write/create event for path, until ctx is
// canceled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := w.reload(); err != nil {
				w.logger.Infof("reloading catalog %s failed: %v", w.path, err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Infof("catalog watcher error: %v", err)
		}
	}
}
