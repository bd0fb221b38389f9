package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding every workspace journal.
	StreamName = "mindtask_events"

	subjectRoot = "mindtask"
)

// SubjectForWorkspace returns the wildcard subject for all events of a
// workspace, e.g. "mindtask.default.>".
func SubjectForWorkspace(workspace string) string {
	return fmt.Sprintf("%s.%s.>", subjectRoot, workspace)
}

// SubjectForEvent returns the subject for one event type in a workspace,
// e.g. "mindtask.default.task".
func SubjectForEvent(workspace, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, workspace, eventType)
}

// SetupStream creates or updates the journal stream. Journals are kept
// until purged: replaying a truncated journal would rebuild a different tree.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{subjectRoot + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up stream %s: %w", StreamName, err)
	}
	return stream, nil
}

// PurgeWorkspace removes every journaled event of a workspace.
func PurgeWorkspace(ctx context.Context, stream jetstream.Stream, workspace string) error {
	if err := stream.Purge(ctx, jetstream.WithPurgeSubject(SubjectForWorkspace(workspace))); err != nil {
		return fmt.Errorf("purging workspace %s: %w", workspace, err)
	}
	return nil
}
