package ctxengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/flemzord/recall/internal/history"
	"github.com/flemzord/recall/pkg/message"
)

// Renderers are pure functions of one record plus now: no side effects,
// byte-identical output on repeated calls.

// RenderFull reconstructs a turn-by-turn transcript inside a tagged block.
// Only human/assistant entries with non-empty extracted text are kept; each
// is prefixed with its role and, when recorded, an entry-local HH:MM time.
// Returns ok=false when the record is malformed or nothing survives
// filtering; callers skip such records and continue.
func RenderFull(rec history.Record, now time.Time, loc *time.Location) (string, bool) {
	if rec.SessionID == "" || rec.EndedAt.IsZero() {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}

	var lines []string
	for _, entry := range rec.Transcript {
		if !entry.Role.IsConversational() {
			continue
		}
		text := strings.TrimSpace(entry.Content.Text())
		if text == "" {
			continue
		}

		speaker := "human"
		if entry.Role == message.RoleAssistant {
			speaker = "you"
		}

		if entry.HasTimestamp() {
			lines = append(lines, fmt.Sprintf("[%s %s] %s", speaker, entry.Timestamp.In(loc).Format("15:04"), text))
		} else {
			lines = append(lines, fmt.Sprintf("[%s] %s", speaker, text))
		}
	}

	if len(lines) == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(openTag(rec, now, loc, false))
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n</conversation>")
	return b.String(), true
}

// RenderSummary emits a one-line compressed representation of the record,
// tagged so downstream consumers never mistake it for verbatim transcript.
func RenderSummary(rec history.Record, now time.Time, loc *time.Location) (string, bool) {
	if rec.SessionID == "" || rec.EndedAt.IsZero() {
		return "", false
	}
	summary := strings.TrimSpace(rec.Summary)
	if summary == "" {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	b.WriteString(openTag(rec, now, loc, true))
	b.WriteString("\n[summary] ")
	b.WriteString(summary)
	b.WriteString("\n</conversation>")
	return b.String(), true
}

// openTag builds the provenance header shared by both renderers: the
// record's start timestamp and its relative-age label.
func openTag(rec history.Record, now time.Time, loc *time.Location, summary bool) string {
	started := rec.StartedAt
	if started.IsZero() {
		started = rec.EndedAt
	}
	tag := fmt.Sprintf(`<conversation started=%q age=%q`,
		started.In(loc).Format(time.RFC3339),
		RelativeLabel(rec.EndedAt, now, loc))
	if summary {
		tag += ` type="summary"`
	}
	return tag + ">"
}
