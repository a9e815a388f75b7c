package negotiation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/owlconnect/matching-platform/internal/llm"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/session"
	"github.com/owlconnect/matching-platform/internal/stream"
	"github.com/owlconnect/matching-platform/pkg/logger"
)

type fakeDirectory struct {
	mentors []model.MentorProfile
	err     error
}

func (d *fakeDirectory) ListMentors(ctx context.Context) ([]model.MentorProfile, error) {
	return d.mentors, d.err
}

// fakeLLM returns a fixed utterance, optionally after a delay or with an
// error, so negotiations resolve purely on profile alignment.
type fakeLLM struct {
	text  string
	err   error
	delay time.Duration
}

func (f *fakeLLM) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.text, Model: "fake"}, nil
}

func (f *fakeLLM) Name() string { return "fake" }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func testConfig() Config {
	return Config{
		MaxRounds:        5,
		MaxConcurrent:    2,
		TurnTimeout:      5 * time.Second,
		SuccessThreshold: 60,
	}
}

// drain reads fragments until the terminal sentinel or a timeout.
func drain(t *testing.T, sess *session.Session) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out []string
	for {
		frag, ok := sess.Mux.Next(ctx)
		require.True(t, ok, "stream ended before terminal sentinel; got %v", out)
		out = append(out, frag.Text)
		if frag.Text == stream.SentinelDone {
			return out
		}
	}
}

func statesByID(sess *session.Session) map[string]model.NegotiationState {
	out := make(map[string]model.NegotiationState)
	for _, st := range sess.States() {
		out[st.MentorID] = st
	}
	return out
}

func TestEngine_RunResolvesStrongAndWeakCandidates(t *testing.T) {
	dir := &fakeDirectory{mentors: []model.MentorProfile{
		*alignedMentor(),
		*unrelatedMentor(),
	}}
	engine := NewEngine(&fakeLLM{text: "Tell me more about your goals."}, dir, testConfig(), nil, testLogger(t))

	sess := session.New("11111111-1111-4111-8111-111111111111", alignedMentee(), 1024)
	require.True(t, sess.Begin())
	engine.Run(context.Background(), sess)

	states := statesByID(sess)
	require.Len(t, states, 2)

	strong := states["m-strong"]
	assert.Equal(t, model.StatusSuccessful, strong.Status)
	assert.GreaterOrEqual(t, strong.Score, StrongMatchScore)
	assert.LessOrEqual(t, strong.Round, 2)
	require.NotNil(t, strong.FinishedAt)

	weak := states["m-weak"]
	assert.Equal(t, model.StatusRejected, weak.Status)

	assert.True(t, sess.Complete())

	fragments := drain(t, sess)
	assert.Equal(t, stream.SessionBanner(sess.ID), fragments[0])
	assert.Contains(t, fragments, stream.ProcessingBanner("Sam Rivera"))
	assert.Contains(t, fragments, stream.SuccessBanner("Sam Rivera"))
	assert.Contains(t, fragments, stream.NoMatchBanner("Pat Doyle"))
	assert.Contains(t, fragments, stream.SummaryStart)
	assert.Contains(t, fragments, stream.MarkerClosed)

	// Summary block lists the successful mentor at rank 1.
	found := false
	for _, f := range fragments {
		if f == "1. ✓ Jordan → Sam Rivera (score 100)" {
			found = true
		}
	}
	assert.True(t, found, "missing ranked summary line in %v", fragments)

	// The stream ends deterministically after the sentinel.
	_, ok := sess.Mux.Next(context.Background())
	assert.False(t, ok, "stream stayed open after terminal sentinel")
	assert.True(t, sess.Mux.Closed())
}

func TestEngine_DirectoryUnavailable(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("disk gone")}
	engine := NewEngine(&fakeLLM{text: "hello"}, dir, testConfig(), nil, testLogger(t))

	sess := session.New("22222222-2222-4222-8222-222222222222", alignedMentee(), 64)
	require.True(t, sess.Begin())
	engine.Run(context.Background(), sess)

	fragments := drain(t, sess)
	assert.Contains(t, fragments[1], "mentor directory unavailable")
	assert.Equal(t, stream.SentinelDone, fragments[len(fragments)-1])
	assert.True(t, sess.Complete())
}

func TestEngine_GenerationFailureExhaustsCandidates(t *testing.T) {
	dir := &fakeDirectory{mentors: []model.MentorProfile{*alignedMentor()}}
	engine := NewEngine(&fakeLLM{err: errors.New("model offline")}, dir, testConfig(), nil, testLogger(t))

	sess := session.New("33333333-3333-4333-8333-333333333333", alignedMentee(), 64)
	require.True(t, sess.Begin())
	engine.Run(context.Background(), sess)

	states := statesByID(sess)
	assert.Equal(t, model.StatusExhausted, states["m-strong"].Status)

	fragments := drain(t, sess)
	assert.Contains(t, fragments, stream.SkippedBanner("Sam Rivera"))
	assert.Contains(t, fragments, "✗ No successful matches for Jordan")

	// The skipped banner is the candidate's only outcome banner.
	assert.NotContains(t, fragments, stream.NoMatchBanner("Sam Rivera"))
}

func TestEngine_TurnTimeoutCountsAsSilentRounds(t *testing.T) {
	cfg := testConfig()
	cfg.TurnTimeout = 20 * time.Millisecond

	dir := &fakeDirectory{mentors: []model.MentorProfile{*alignedMentor()}}
	engine := NewEngine(&fakeLLM{text: "slow", delay: 200 * time.Millisecond}, dir, cfg, nil, testLogger(t))

	sess := session.New("44444444-4444-4444-8444-444444444444", alignedMentee(), 64)
	require.True(t, sess.Begin())
	engine.Run(context.Background(), sess)

	states := statesByID(sess)
	st := states["m-strong"]
	assert.Equal(t, model.StatusExhausted, st.Status)
	assert.Empty(t, st.Dialogue)

	fragments := drain(t, sess)
	assert.Contains(t, fragments, stream.NoMatchBanner("Sam Rivera"))
	assert.NotContains(t, fragments, stream.SkippedBanner("Sam Rivera"))
}

func TestEngine_CancellationStopsWithoutSummary(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := &fakeDirectory{mentors: []model.MentorProfile{*alignedMentor(), *unrelatedMentor()}}
	engine := NewEngine(&fakeLLM{text: "thinking", delay: 100 * time.Millisecond}, dir, testConfig(), nil, testLogger(t))

	sess := session.New("55555555-5555-4555-8555-555555555555", alignedMentee(), 64)
	require.True(t, sess.Begin())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		engine.Run(ctx, sess)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after cancellation")
	}

	// No summary or sentinel after cancellation.
	sess.Mux.Close()
	readCtx := context.Background()
	for {
		frag, ok := sess.Mux.Next(readCtx)
		if !ok {
			break
		}
		assert.NotEqual(t, stream.SummaryStart, frag.Text)
		assert.NotEqual(t, stream.SentinelDone, frag.Text)
	}
	assert.False(t, sess.Complete())
}
