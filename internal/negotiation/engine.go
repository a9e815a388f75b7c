package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/owlconnect/matching-platform/internal/llm"
	"github.com/owlconnect/matching-platform/internal/model"
	"github.com/owlconnect/matching-platform/internal/ranking"
	"github.com/owlconnect/matching-platform/internal/selector"
	"github.com/owlconnect/matching-platform/internal/session"
	"github.com/owlconnect/matching-platform/internal/stream"
	"github.com/owlconnect/matching-platform/pkg/logger"
	"github.com/owlconnect/matching-platform/pkg/metrics"
)

// Archiver persists terminal negotiation outcomes. Optional; archiving is
// best effort and never affects the session.
type Archiver interface {
	Archive(ctx context.Context, sessionID string, state model.NegotiationState) error
}

// Config bounds a session's negotiations.
type Config struct {
	// MaxRounds is the per-candidate round budget.
	MaxRounds int
	// MaxConcurrent caps parallel negotiations within one session.
	MaxConcurrent int
	// TurnTimeout bounds each dialogue-generation step.
	TurnTimeout time.Duration
	// SuccessThreshold is the minimum frozen score for agreement cues to
	// conclude a match.
	SuccessThreshold float64
}

// Engine drives all negotiations for a session and feeds the session's
// fragment stream.
type Engine struct {
	llm      llm.Client
	dir      selector.Directory
	cfg      Config
	archiver Archiver
	logger   *logger.Logger
}

// NewEngine creates a negotiation engine. archiver may be nil.
func NewEngine(client llm.Client, dir selector.Directory, cfg Config, archiver Archiver, log *logger.Logger) *Engine {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 5
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = 30 * time.Second
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 60
	}
	return &Engine{llm: client, dir: dir, cfg: cfg, archiver: archiver, logger: log}
}

// Run executes the whole session: candidate selection, concurrent
// negotiations, and the final summary block. It returns once every
// candidate is terminal or ctx is canceled. On cancellation no further
// fragments are emitted.
func (e *Engine) Run(ctx context.Context, sess *session.Session) {
	log := e.logger.WithSession(sess.ID)
	mux := sess.Mux

	mux.PublishBanner(stream.SessionBanner(sess.ID))

	candidates, err := selector.Select(ctx, e.dir, sess.Mentee)
	if err != nil {
		log.Error("candidate selection failed", zap.Error(err))
		mux.PublishTerminal("✗ Error: mentor directory unavailable, session cannot start")
		mux.PublishTerminal(stream.SentinelDone)
		sess.Finish()
		mux.Close()
		return
	}
	if len(candidates) == 0 {
		mux.PublishTerminal("✗ No mentors in the directory")
		mux.PublishTerminal(stream.SentinelDone)
		sess.Finish()
		mux.Close()
		return
	}

	mentors := make([]model.MentorProfile, 0, len(candidates))
	names := ""
	for i, c := range candidates {
		mentors = append(mentors, c.Mentor)
		if i > 0 {
			names += ", "
		}
		names += c.Mentor.Name
	}
	sess.SetCandidates(mentors)
	mux.Publish(fmt.Sprintf("Potential mentors: %s", names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrent)
	for _, cand := range candidates {
		cand := cand
		g.Go(func() error {
			e.negotiate(gctx, sess, &cand.Mentor)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		// Client gone: in-flight work observed cancellation at a turn
		// boundary; partial state is discarded with the session.
		log.Info("session canceled")
		return
	}

	sess.Finish()
	e.summarize(sess)
	log.Info("session complete")
}

// negotiate runs the bounded-round dialogue for one candidate. It is the
// single writer of that candidate's NegotiationState.
func (e *Engine) negotiate(ctx context.Context, sess *session.Session, mentor *model.MentorProfile) {
	log := e.logger.WithCandidate(sess.ID, mentor.ID)
	mux := sess.Mux
	mentee := sess.Mentee

	mux.PublishBanner(stream.ProcessingBanner(mentor.Name))

	score := BaseAlignment(mentee, mentor)
	sess.Update(mentor.ID, func(st *model.NegotiationState) {
		st.Status = model.StatusInProgress
		st.Score = score
	})

	mentorSys := mentorSystem(mentor, mentee)
	menteeSys := menteeSystem(mentee, mentor)

	var dialogue []model.Utterance
	status := model.StatusExhausted
	skipped := false
	rounds := 0

	for round := 1; round <= e.cfg.MaxRounds; round++ {
		if ctx.Err() != nil {
			return
		}
		rounds = round

		prompt := openingPrompt()
		if len(dialogue) > 0 {
			prompt = continuationPrompt(dialogue)
		}

		mentorText, err := e.turn(ctx, mentorSys, prompt)
		if err != nil {
			if done, newStatus := e.turnFailure(ctx, sess, mentor, err, log); done {
				status = newStatus
				skipped = ctx.Err() == nil
				break
			}
			continue // timed out: a silent round
		}
		dialogue = e.record(sess, mentor.ID, model.SpeakerMentor, round, mentorText, &score, dialogue)
		mux.Publish(stream.DialogueLine("Mentor", mentorText))
		if IsDecline(mentorText) {
			status = model.StatusRejected
			break
		}

		if ctx.Err() != nil {
			return
		}

		menteeText, err := e.turn(ctx, menteeSys, continuationPrompt(dialogue))
		if err != nil {
			if done, newStatus := e.turnFailure(ctx, sess, mentor, err, log); done {
				status = newStatus
				skipped = ctx.Err() == nil
				break
			}
			continue
		}
		dialogue = e.record(sess, mentor.ID, model.SpeakerMentee, round, menteeText, &score, dialogue)
		mux.Publish(stream.DialogueLine("Mentee", menteeText))

		if IsDecline(menteeText) {
			status = model.StatusRejected
			break
		}
		if (IsAgreement(menteeText) && score >= e.cfg.SuccessThreshold) ||
			(round >= 2 && score >= StrongMatchScore) {
			status = model.StatusSuccessful
			break
		}
		if round >= 2 && score < rejectBelowScore {
			status = model.StatusRejected
			break
		}
	}

	if ctx.Err() != nil {
		return
	}
	e.finish(ctx, sess, mentor, status, rounds, skipped, log)
}

// turn executes one dialogue-generation step under the per-turn timeout.
func (e *Engine) turn(ctx context.Context, system, prompt string) (string, error) {
	turnCtx, cancel := context.WithTimeout(ctx, e.cfg.TurnTimeout)
	defer cancel()

	start := time.Now()
	resp, err := e.llm.Complete(turnCtx, &llm.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err != nil {
		metrics.RecordDialogueTurn(e.llm.Name(), "error", time.Since(start).Seconds(), 0, 0)
		return "", err
	}
	metrics.RecordDialogueTurn(resp.Model, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
	if resp.Content == "" {
		return "", fmt.Errorf("%w: empty utterance", model.ErrDialogueGeneration)
	}
	return resp.Content, nil
}

// turnFailure classifies a generation error. A per-turn timeout counts as
// one round of no response (continue); anything else after the retry
// budget demotes the candidate to Exhausted.
func (e *Engine) turnFailure(ctx context.Context, sess *session.Session, mentor *model.MentorProfile, err error, log *logger.Logger) (terminal bool, status model.Status) {
	if ctx.Err() != nil {
		return true, model.StatusExhausted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("dialogue turn timed out", zap.Error(err))
		return false, ""
	}
	log.Warn("candidate demoted after generation failure", zap.Error(err))
	sess.Mux.PublishBanner(stream.SkippedBanner(mentor.Name))
	return true, model.StatusExhausted
}

// record appends one utterance and folds its enthusiasm signal into the
// running score.
func (e *Engine) record(sess *session.Session, mentorID string, speaker model.Speaker, round int, text string, score *float64, dialogue []model.Utterance) []model.Utterance {
	*score = clamp(*score + EnthusiasmDelta(text))
	u := model.Utterance{Speaker: speaker, Round: round, Text: text, At: time.Now()}
	dialogue = append(dialogue, u)
	sess.Update(mentorID, func(st *model.NegotiationState) {
		st.Round = round
		st.Score = *score
		st.Dialogue = append(st.Dialogue, u)
	})
	return dialogue
}

// finish freezes the candidate's terminal state, emits its outcome banner
// and archives the transcript. A candidate already reported by the skipped
// banner gets no second outcome banner.
func (e *Engine) finish(ctx context.Context, sess *session.Session, mentor *model.MentorProfile, status model.Status, rounds int, skipped bool, log *logger.Logger) {
	now := time.Now()
	var final model.NegotiationState
	sess.Update(mentor.ID, func(st *model.NegotiationState) {
		st.Status = status
		st.FinishedAt = &now
		final = *st
	})

	switch status {
	case model.StatusSuccessful:
		sess.Mux.PublishBanner(stream.SuccessBanner(mentor.Name))
	case model.StatusRejected, model.StatusExhausted:
		if !skipped {
			sess.Mux.PublishBanner(stream.NoMatchBanner(mentor.Name))
		}
	}

	metrics.RecordNegotiation(string(status), rounds)
	log.Info("negotiation finished",
		zap.String("status", string(status)),
		zap.Int("rounds", rounds),
		zap.Float64("score", final.Score),
	)

	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, sess.ID, final); err != nil {
			log.Warn("transcript archive failed", zap.Error(err))
		}
	}
}

// summarize emits the bounded final summary block and the terminal
// sentinel, then closes the stream. Queued fragments stay readable until
// drained, so the sentinel is always delivered.
func (e *Engine) summarize(sess *session.Session) {
	mux := sess.Mux
	ranked := ranking.Rank(sess.States())

	mux.PublishTerminal(stream.SummaryStart)
	if len(ranked) == 0 {
		mux.PublishTerminal(fmt.Sprintf("✗ No successful matches for %s", sess.Mentee.Name))
	} else {
		for _, r := range ranked {
			mux.PublishTerminal(fmt.Sprintf("%d. ✓ %s → %s (score %.0f)",
				r.Rank, sess.Mentee.Name, r.Name, r.Score))
		}
	}
	mux.PublishTerminal(stream.MarkerClosed)
	mux.PublishTerminal(stream.SentinelDone)
	mux.Close()
}
