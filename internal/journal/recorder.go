package journal

import (
	"context"
	"sync"

	"github.com/mark3labs/mindtask/internal/tree"
)

// Recorder buffers the changes applied to a store until they are flushed
// to the journal.
type Recorder struct {
	journal   *Journal
	workspace string

	mu      sync.Mutex
	pending []tree.Change
	stop    func()
}

// NewRecorder subscribes to store and records every applied change.
func NewRecorder(j *Journal, workspace string, store *tree.Store) *Recorder {
	r := &Recorder{journal: j, workspace: workspace}
	r.stop = store.Subscribe(r.record)
	return r
}

func (r *Recorder) record(u tree.Update) {
	r.mu.Lock()
	r.pending = append(r.pending, u.Change)
	r.mu.Unlock()
}

// Pending returns the number of unflushed changes.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush publishes buffered changes in order. On failure the unpublished
// tail stays buffered.
func (r *Recorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.pending) > 0 {
		if _, err := r.journal.Append(ctx, r.workspace, r.pending[0]); err != nil {
			return err
		}
		r.pending = r.pending[1:]
	}
	r.pending = nil
	return nil
}

// Stop detaches the recorder from its store. Buffered changes are kept.
func (r *Recorder) Stop() {
	r.stop()
}
