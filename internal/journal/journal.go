// Package journal persists tree changes as an append-only event log on
// JetStream and rebuilds stores by replaying it.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mindtask/internal/logger"
	"github.com/mark3labs/mindtask/internal/nats"
	"github.com/mark3labs/mindtask/internal/tree"
	"github.com/nats-io/nats.go/jetstream"
)

const replayBatchSize = 1000

// Event is one journaled change.
type Event struct {
	ID        string      `json:"id"`        // stream sequence
	Timestamp time.Time   `json:"timestamp"` // when the change was applied
	Workspace string      `json:"workspace"`
	Type      string      `json:"type"`   // project or task
	Action    string      `json:"action"` // create, rename, toggle, ...
	Change    tree.Change `json:"change"`
}

// NewEvent wraps a change for the given workspace.
func NewEvent(workspace string, c tree.Change) Event {
	typ, action, _ := strings.Cut(string(c.Kind), ".")
	return Event{
		Timestamp: time.Now().UTC(),
		Workspace: workspace,
		Type:      typ,
		Action:    action,
		Change:    c,
	}
}

// Journal appends and replays workspace events.
type Journal struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// New returns a Journal over an already set-up stream.
func New(js jetstream.JetStream, stream jetstream.Stream) *Journal {
	return &Journal{js: js, stream: stream}
}

// Append publishes one change to the workspace journal.
func (j *Journal) Append(ctx context.Context, workspace string, c tree.Change) (*jetstream.PubAck, error) {
	event := NewEvent(workspace, c)
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling event: %w", err)
	}

	subject := nats.SubjectForEvent(workspace, event.Type)
	ack, err := j.js.Publish(ctx, subject, data)
	if err != nil {
		return nil, fmt.Errorf("publishing to %s: %w", subject, err)
	}

	logger.Debug("Journaled %s in %s: seq=%d", c.Kind, workspace, ack.Sequence)
	return ack, nil
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Events    int // events read
	Applied   int // events the store accepted
	Malformed int // events skipped because they could not be decoded
}

// Replay applies every journaled change of workspace to store in order.
// Events that fail to decode are skipped; changes the store rejects are
// counted but otherwise ignored.
func (j *Journal) Replay(ctx context.Context, workspace string, store *tree.Store) (ReplayResult, error) {
	var res ReplayResult

	consumer, err := j.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForWorkspace(workspace),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return res, fmt.Errorf("creating replay consumer: %w", err)
	}

	for {
		msgs, err := consumer.FetchNoWait(replayBatchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			res.Events++

			event, err := decode(msg.Data())
			if err != nil {
				res.Malformed++
				if meta, merr := msg.Metadata(); merr == nil {
					logger.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				}
				_ = msg.Ack()
				continue
			}

			if store.Apply(event.Change) {
				res.Applied++
			}
			_ = msg.Ack()
		}

		if err := msgs.Error(); err != nil {
			logger.Debug("Replay batch ended: %v", err)
		}
		if count < replayBatchSize {
			break
		}
	}

	if res.Malformed > 0 {
		logger.Warn("Skipped %d malformed events while replaying %s", res.Malformed, workspace)
	}
	logger.Debug("Replayed %s: %d events, %d applied", workspace, res.Events, res.Applied)
	return res, nil
}

func decode(data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if event.Change.Kind == "" {
		return Event{}, errors.New("event carries no change")
	}
	return event, nil
}

// Purge drops every event of workspace.
func (j *Journal) Purge(ctx context.Context, workspace string) error {
	return nats.PurgeWorkspace(ctx, j.stream, workspace)
}
