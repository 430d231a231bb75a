package message

import "time"

// Entry is one turn in a conversation transcript.
type Entry struct {
	// Role is the author of the turn.
	Role Role `json:"role"`

	// Timestamp is when the turn occurred. The zero value means the source
	// did not record one; renderers omit the time prefix in that case.
	Timestamp time.Time `json:"timestamp,omitzero"`

	// Content is the turn body: plain text or typed blocks.
	Content Content `json:"content"`
}

// HasTimestamp reports whether the entry carries a per-turn timestamp.
func (e Entry) HasTimestamp() bool {
	return !e.Timestamp.IsZero()
}

// NewEntry creates a plain-text entry.
func NewEntry(role Role, ts time.Time, text string) Entry {
	return Entry{Role: role, Timestamp: ts, Content: TextContent(text)}
}
