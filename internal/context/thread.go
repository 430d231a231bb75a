package ctxengine

import (
	"time"

	"github.com/flemzord/recall/internal/history"
)

// ThreadStatus reports whether the requester is mid-thread and which
// sessions form the live chain. Computed once per assembly call.
type ThreadStatus struct {
	// IsContinuation is true when the most recent conversation ended within
	// the liveness window of now.
	IsContinuation bool

	// SessionIDs is the set of session identifiers in the live chain.
	SessionIDs map[string]struct{}
}

// Contains reports whether the session is part of the live thread.
func (ts ThreadStatus) Contains(sessionID string) bool {
	_, ok := ts.SessionIDs[sessionID]
	return ok
}

// DetectThread walks records (which must be sorted by EndedAt descending)
// and determines the live thread chain.
//
// The most recent record seeds the chain if it ended within window of now.
// The chain then extends backward while the gap between consecutive records
// stays within window; a single larger gap terminates it, even if later
// records are individually close together.
func DetectThread(records []history.Record, now time.Time, window time.Duration) ThreadStatus {
	status := ThreadStatus{SessionIDs: make(map[string]struct{})}

	if len(records) == 0 {
		return status
	}

	mostRecent := records[0]
	if now.Sub(mostRecent.EndedAt) > window {
		// History exists but the user is starting fresh.
		return status
	}

	status.IsContinuation = true
	status.SessionIDs[mostRecent.SessionID] = struct{}{}
	cursor := mostRecent.EndedAt

	for _, rec := range records[1:] {
		if cursor.Sub(rec.EndedAt) > window {
			break
		}
		status.SessionIDs[rec.SessionID] = struct{}{}
		cursor = rec.EndedAt
	}

	return status
}
