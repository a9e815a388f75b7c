package model

import "time"

// Speaker identifies which simulated agent produced an utterance.
type Speaker string

const (
	SpeakerMentor Speaker = "mentor"
	SpeakerMentee Speaker = "mentee"
)

// Status is the per-candidate negotiation state. Successful, Rejected and
// Exhausted are terminal: once set, the NegotiationState never transitions
// again.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusSuccessful Status = "successful"
	StatusRejected   Status = "rejected"
	StatusExhausted  Status = "exhausted"
)

// Terminal reports whether a status admits no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccessful, StatusRejected, StatusExhausted:
		return true
	}
	return false
}

// Utterance is one turn of simulated dialogue.
type Utterance struct {
	Speaker Speaker   `json:"speaker"`
	Round   int       `json:"round"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// NegotiationState tracks one (session, mentor candidate) negotiation.
// Written only by its own negotiation task; read by the ranking aggregator
// and the stream multiplexer once terminal.
type NegotiationState struct {
	MentorID   string      `json:"mentor_id"`
	MentorName string      `json:"mentor_name"`
	Round      int         `json:"round"`
	Dialogue   []Utterance `json:"dialogue"`
	Score      float64     `json:"score"`
	Status     Status      `json:"status"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}

// RankedMentor pairs a mentor with its dense rank (1 = best).
type RankedMentor struct {
	MentorID string  `json:"mentor_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
}
