// Package workspace wires a tree store to its persisted journal.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mindtask/internal/config"
	"github.com/mark3labs/mindtask/internal/journal"
	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/nats"
	"github.com/mark3labs/mindtask/internal/tree"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
)

// ErrNoProject is returned when an operation needs a selected project.
var ErrNoProject = errors.New("no project selected")

// Workspace is an open, possibly persisted, tree store.
type Workspace struct {
	Name string

	store    *tree.Store
	opts     []tree.Option
	journal  *journal.Journal
	recorder *journal.Recorder

	ns *server.Server
	nc *natsgo.Conn

	closeOnce sync.Once
	closeErr  error
}

// Open builds the workspace named in cfg. With persistence enabled the
// journal under <data_dir>/nats is replayed into a fresh store and every
// later change is recorded until Commit.
func Open(ctx context.Context, cfg *config.Config, opts ...tree.Option) (*Workspace, error) {
	w := &Workspace{Name: cfg.Workspace, store: tree.New(opts...), opts: opts}
	if !cfg.Persist {
		logger.Debug("Workspace %s opened in memory", w.Name)
		return w, nil
	}

	storeDir := filepath.Join(cfg.DataDir, "nats")
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	ns, err := nats.StartEmbeddedNATS(storeDir)
	if err != nil {
		return nil, err
	}
	w.ns = ns

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		_ = nats.Shutdown(nil, ns)
		return nil, err
	}
	w.nc = nc

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	w.journal = journal.New(js, stream)
	res, err := w.journal.Replay(ctx, w.Name, w.store)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("replaying workspace %s: %w", w.Name, err)
	}
	w.recorder = journal.NewRecorder(w.journal, w.Name, w.store)

	logger.Info("Workspace %s opened: %d events replayed", w.Name, res.Applied)
	return w, nil
}

// Store returns the workspace's tree.
func (w *Workspace) Store() *tree.Store {
	return w.store
}

// Persistent reports whether changes are journaled.
func (w *Workspace) Persistent() bool {
	return w.journal != nil
}

// Commit flushes recorded changes to the journal. It is a no-op for
// in-memory workspaces.
func (w *Workspace) Commit(ctx context.Context) error {
	if w.recorder == nil {
		return nil
	}
	if err := w.recorder.Flush(ctx); err != nil {
		return fmt.Errorf("committing workspace %s: %w", w.Name, err)
	}
	return nil
}

// Reset discards the workspace journal and replaces the store with an empty
// one. Callers holding the old store must fetch it again.
func (w *Workspace) Reset(ctx context.Context) error {
	if w.journal != nil {
		if err := w.journal.Purge(ctx, w.Name); err != nil {
			return err
		}
		w.recorder.Stop()
	}
	w.store = tree.New(w.opts...)
	if w.journal != nil {
		w.recorder = journal.NewRecorder(w.journal, w.Name, w.store)
	}
	return nil
}

// Close shuts down the journal. Uncommitted changes are lost.
func (w *Workspace) Close() error {
	w.closeOnce.Do(func() {
		if w.recorder != nil {
			if n := w.recorder.Pending(); n > 0 {
				logger.Warn("Closing workspace %s with %d uncommitted changes", w.Name, n)
			}
			w.recorder.Stop()
		}
		if w.nc != nil || w.ns != nil {
			w.closeErr = nats.Shutdown(w.nc, w.ns)
		}
	})
	return w.closeErr
}

