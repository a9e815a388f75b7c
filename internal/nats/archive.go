package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/owlconnect/matching-platform/internal/model"
)

const (
	// StreamName is the name of the negotiation archive stream.
	StreamName = "NEGOTIATIONS"

	// SubjectPrefix is the prefix for all negotiation subjects.
	SubjectPrefix = "negotiation"
)

// Archive persists terminal negotiation outcomes to JetStream so
// transcripts survive session expiry.
type Archive struct {
	client *Client
}

// NewArchive creates an archive backed by the given client.
func NewArchive(client *Client) *Archive {
	return &Archive{client: client}
}

// EnsureStream creates the negotiation stream if it does not exist.
func (a *Archive) EnsureStream(ctx context.Context) error {
	js := a.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		MaxBytes:    10 * 1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Terminal negotiation transcripts and outcomes",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// OutcomeSubject returns the subject for a negotiation outcome.
func OutcomeSubject(sessionID, mentorID string, status model.Status) string {
	return fmt.Sprintf("%s.%s.%s.%s", SubjectPrefix, sessionID, mentorID, status)
}

// Archive publishes a terminal negotiation state.
func (a *Archive) Archive(ctx context.Context, sessionID string, state model.NegotiationState) error {
	subject := OutcomeSubject(sessionID, state.MentorID, state.Status)

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal negotiation state: %w", err)
	}

	if _, err := a.client.JetStream().Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish negotiation outcome: %w", err)
	}

	return nil
}
