// Package stream serializes negotiation progress into an ordered,
// append-only sequence of self-contained text fragments for delivery over
// a per-session WebSocket.
package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/owlconnect/matching-platform/pkg/metrics"
)

// Reserved markers of the streaming protocol. Banners are always atomic
// single fragments; the summary block is bounded by SummaryStart and
// MarkerClosed; SentinelDone is the last fragment of a stream.
const (
	SentinelDone = "[done]"
	MarkerClosed = "[closed]"
	SummaryStart = "=== FINAL MATCHING SUMMARY ==="
)

// SessionBanner opens a session stream.
func SessionBanner(sessionID string) string {
	return fmt.Sprintf("[session %s] streaming started", sessionID)
}

// ProcessingBanner precedes every fragment belonging to one candidate.
func ProcessingBanner(mentorName string) string {
	return fmt.Sprintf("=== PROCESSING MENTOR: %s ===", mentorName)
}

// SuccessBanner closes a candidate's fragments after mutual agreement.
func SuccessBanner(mentorName string) string {
	return fmt.Sprintf("✓ Successfully negotiated with %s", mentorName)
}

// NoMatchBanner closes a candidate's fragments without agreement.
func NoMatchBanner(mentorName string) string {
	return fmt.Sprintf("✗ No agreement reached with %s", mentorName)
}

// SkippedBanner reports a candidate demoted by generation failure; the
// stream continues with remaining candidates.
func SkippedBanner(mentorName string) string {
	return fmt.Sprintf("✗ Skipped %s (mentor agent unavailable)", mentorName)
}

// DialogueLine formats one utterance as a single self-contained fragment.
func DialogueLine(speaker, text string) string {
	return fmt.Sprintf("%s: %s", speaker, text)
}

// Fragment is one atomic unit of streamed text. Banner and Terminal
// fragments are never dropped under backpressure.
type Fragment struct {
	Text     string
	Banner   bool
	Terminal bool
}

// Multiplexer is a bounded, ordered fragment queue with a single-consumer
// read side. Multiple negotiation tasks publish concurrently; per-task
// publish order is preserved. On overflow only plain dialogue fragments
// are dropped, never banners, summaries or the terminal sentinel.
type Multiplexer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Fragment
	limit  int
	closed bool
}

// NewMultiplexer creates a multiplexer buffering up to limit droppable
// fragments.
func NewMultiplexer(limit int) *Multiplexer {
	if limit <= 0 {
		limit = 256
	}
	m := &Multiplexer{limit: limit}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Publish appends a dialogue fragment. Returns false if the fragment was
// dropped due to backpressure or the stream is closed.
func (m *Multiplexer) Publish(text string) bool {
	return m.push(Fragment{Text: text})
}

// PublishBanner appends a banner fragment. Banners are never dropped.
func (m *Multiplexer) PublishBanner(text string) bool {
	return m.push(Fragment{Text: text, Banner: true})
}

// PublishTerminal appends a terminal fragment (summary block lines,
// MarkerClosed, SentinelDone). Never dropped.
func (m *Multiplexer) PublishTerminal(text string) bool {
	return m.push(Fragment{Text: text, Banner: true, Terminal: true})
}

func (m *Multiplexer) push(f Fragment) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	if !f.Banner && len(m.queue) >= m.limit {
		// Slow consumer: shed plain dialogue, keep structure intact.
		metrics.FragmentsDropped.Inc()
		return false
	}
	m.queue = append(m.queue, f)
	m.cond.Signal()
	return true
}

// Next blocks until a fragment is available, the stream closes, or ctx is
// done. The second return is false once the stream is closed and drained.
func (m *Multiplexer) Next(ctx context.Context) (Fragment, bool) {
	// Wake the cond wait when the context ends.
	stop := context.AfterFunc(ctx, func() {
		m.mu.Lock()
		m.cond.Broadcast()
		m.mu.Unlock()
	})
	defer stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 {
		if m.closed || ctx.Err() != nil {
			return Fragment{}, false
		}
		m.cond.Wait()
	}
	f := m.queue[0]
	m.queue = m.queue[1:]
	return f, true
}

// Close stops accepting fragments and unblocks readers. Queued fragments
// remain readable until drained.
func (m *Multiplexer) Close() {
	m.mu.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
}

// Closed reports whether the multiplexer has stopped accepting fragments.
func (m *Multiplexer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
