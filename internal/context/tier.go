package ctxengine

import (
	"slices"
	"time"

	"github.com/flemzord/recall/internal/history"
)

// Tier is one of four mutually exclusive priority buckets governing
// rendering detail and fill order.
type Tier int

// Tiers in fill-priority order.
const (
	TierActiveThread Tier = iota
	TierToday
	TierYesterday
	TierOlder
)

// String returns the tier name used in logs and metrics labels.
func (t Tier) String() string {
	switch t {
	case TierActiveThread:
		return "active_thread"
	case TierToday:
		return "today"
	case TierYesterday:
		return "yesterday"
	case TierOlder:
		return "older"
	default:
		return "unknown"
	}
}

// labelToday and labelYesterday are the two fixed relative-age labels;
// anything older gets a weekday name.
const (
	labelToday     = "today"
	labelYesterday = "yesterday"
)

// RelativeLabel returns "today", "yesterday", or the weekday name of endedAt.
// Comparison is by calendar date in loc, not elapsed duration: two timestamps
// two hours apart that cross local midnight are "today" vs "yesterday".
func RelativeLabel(endedAt, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	e := endedAt.In(loc)
	n := now.In(loc)

	ey, em, ed := e.Date()
	ny, nm, nd := n.Date()
	if ey == ny && em == nm && ed == nd {
		return labelToday
	}

	yy, ym, yd := n.AddDate(0, 0, -1).Date()
	if ey == yy && em == ym && ed == yd {
		return labelYesterday
	}

	return e.Weekday().String()
}

// Tiers holds the partitioned records. ActiveThread is chronological
// ascending (oldest first) for readability; the other tiers keep the
// input order (newest first).
type Tiers struct {
	ActiveThread []history.Record
	Today        []history.Record
	Yesterday    []history.Record
	Older        []history.Record
}

// Partition classifies every record into exactly one tier. Thread
// membership wins over age bucketing, so a live-thread record that is also
// "today" lands in ActiveThread only.
func Partition(records []history.Record, thread ThreadStatus, now time.Time, loc *time.Location) Tiers {
	var tiers Tiers

	for _, rec := range records {
		switch {
		case thread.Contains(rec.SessionID):
			tiers.ActiveThread = append(tiers.ActiveThread, rec)
		case now.Sub(rec.EndedAt) < 24*time.Hour:
			tiers.Today = append(tiers.Today, rec)
		case RelativeLabel(rec.EndedAt, now, loc) == labelYesterday:
			tiers.Yesterday = append(tiers.Yesterday, rec)
		default:
			tiers.Older = append(tiers.Older, rec)
		}
	}

	// The detector discovers thread records newest-first; flip to oldest-first.
	slices.Reverse(tiers.ActiveThread)

	return tiers
}
