// Package history defines the conversation record model and the store
// contract the context engine reads from.
package history

import (
	"time"

	"github.com/flemzord/recall/pkg/message"
)

// Record is one finished (or in-progress) conversation for a requester.
// Records are read-only to the context engine.
type Record struct {
	// SessionID is an opaque identifier, stable for the conversation's lifetime.
	SessionID string `json:"session_id"`

	// StartedAt and EndedAt bound the conversation. EndedAt >= StartedAt.
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	// Transcript is the ordered list of turns.
	Transcript []message.Entry `json:"transcript"`

	// Summary is a precomputed one-line description of the conversation,
	// produced by an external summarization step.
	Summary string `json:"summary"`

	// MessageCount is informational only.
	MessageCount int `json:"message_count"`
}

// Store provides conversation records per requester.
// Implementations must be safe for concurrent use.
//
// Contract: RecordsForRequester returns records sorted by EndedAt
// descending (most recent first). The context engine does not re-sort;
// active-thread detection depends on this ordering. Implementations may
// pre-filter (e.g. to a retention window) before returning.
type Store interface {
	// RecordsForRequester returns the requester's records, newest first.
	// An unknown requester yields an empty slice, not an error.
	RecordsForRequester(requesterID string) ([]Record, error)

	// Save stores a record for a requester, replacing any record with the
	// same session ID.
	Save(requesterID string, rec Record) error
}
