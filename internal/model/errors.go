package model

import "errors"

// Error taxonomy for the matching platform. Per-candidate failures are
// isolated; only directory and session lookup failures are session-fatal.
var (
	// ErrDirectoryUnavailable means the mentor directory cannot be read.
	// Fatal for the session: candidate selection cannot proceed.
	ErrDirectoryUnavailable = errors.New("mentor directory unavailable")

	// ErrDialogueGeneration means a dialogue-generation step failed after
	// its retry budget. Demotes the affected candidate to Exhausted.
	ErrDialogueGeneration = errors.New("dialogue generation failed")

	// ErrInsufficientProfile means a roadmap request carried empty mentee
	// or mentor text.
	ErrInsufficientProfile = errors.New("insufficient profile text")

	// ErrSessionNotFound means the client referenced an unknown or
	// expired session id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMentorNotFound means a mentor id does not resolve in the directory.
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrMenteeNotFound means no mentee has been onboarded yet.
	ErrMenteeNotFound = errors.New("mentee not found")
)
