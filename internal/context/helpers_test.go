package ctxengine_test

import (
	"strings"
	"time"

	"github.com/flemzord/recall/internal/history"
	"github.com/flemzord/recall/pkg/message"
)

// base is a fixed reference instant: Friday 2025-06-06 15:00 UTC.
var base = time.Date(2025, 6, 6, 15, 0, 0, 0, time.UTC)

// record builds a conversation that ended `age` before base and lasted 10
// minutes, with one human/assistant exchange.
func record(sessionID string, age time.Duration) history.Record {
	ended := base.Add(-age)
	started := ended.Add(-10 * time.Minute)
	return history.Record{
		SessionID: sessionID,
		StartedAt: started,
		EndedAt:   ended,
		Transcript: []message.Entry{
			message.NewEntry(message.RoleHuman, started, "question in "+sessionID),
			message.NewEntry(message.RoleAssistant, started.Add(time.Minute), "answer in "+sessionID),
		},
		Summary:      "talked about " + sessionID,
		MessageCount: 2,
	}
}

// longRecord builds a record whose full rendering is at least n characters.
func longRecord(sessionID string, age time.Duration, n int) history.Record {
	rec := record(sessionID, age)
	rec.Transcript = []message.Entry{
		message.NewEntry(message.RoleHuman, rec.StartedAt, "START "+strings.Repeat("x", n)+" END"),
	}
	return rec
}
