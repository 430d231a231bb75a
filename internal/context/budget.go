package ctxengine

import (
	"strings"
	"unicode/utf8"
)

// TruncationMarker joins the head and tail segments of a cut block.
const TruncationMarker = "\n[...truncated...]\n"

// TierBlocks pairs a tier with its rendered candidate blocks, in that
// tier's fill order.
type TierBlocks struct {
	Tier   Tier
	Blocks []string
}

// AllocResult is the outcome of a budget fill.
type AllocResult struct {
	// Blocks is the ordered list of blocks that made the cut.
	Blocks []string

	// Used is the number of budget characters consumed.
	Used int

	// Truncated is true when an active-thread block was head/tail cut.
	Truncated bool
}

// Allocator fills a character budget in fixed tier priority order:
// ActiveThread, Today, Yesterday, Older.
//
// Within the ActiveThread tier, a block that does not fit is head/tail
// truncated rather than dropped, provided the remaining budget exceeds the
// truncation floor; truncation consumes the whole budget and ends the fill.
// In every other case an oversized block abandons its tier only — later
// tiers still get a chance at the remaining budget.
type Allocator struct {
	cfg Config
}

// NewAllocator creates an Allocator with the given config.
func NewAllocator(cfg Config) *Allocator {
	return &Allocator{cfg: cfg.withDefaults()}
}

// Fill consumes tiers in the given order until the budget is exhausted.
// Tiers must be supplied in priority order; Fill never reorders them.
func (a *Allocator) Fill(tiers []TierBlocks) AllocResult {
	budget := a.cfg.MaxContextChars
	var result AllocResult

	for _, tb := range tiers {
		if result.Used >= budget {
			break
		}
		for _, block := range tb.Blocks {
			if result.Used+len(block) <= budget {
				result.Blocks = append(result.Blocks, block)
				result.Used += len(block)
				continue
			}

			remaining := budget - result.Used
			if tb.Tier == TierActiveThread && remaining > a.cfg.TruncationFloor {
				result.Blocks = append(result.Blocks, a.truncateHeadTail(block, remaining))
				result.Used = budget
				result.Truncated = true
				return result
			}

			// Abandon this tier; the next tier may still fit.
			break
		}
	}

	return result
}

// truncateHeadTail keeps the leading HeadFraction and trailing TailFraction
// of the remaining budget, joined by the truncation marker. The head carries
// how the conversation started, the tail what was just said; the middle is
// the cheapest material to elide.
func (a *Allocator) truncateHeadTail(block string, remaining int) string {
	head := cutHead(block, int(float64(remaining)*a.cfg.HeadFraction))
	tail := cutTail(block, int(float64(remaining)*a.cfg.TailFraction))

	var b strings.Builder
	b.Grow(len(head) + len(TruncationMarker) + len(tail))
	b.WriteString(head)
	b.WriteString(TruncationMarker)
	b.WriteString(tail)
	return b.String()
}

// cutHead returns the first n bytes of s, backed off to a rune boundary so
// the cut never produces invalid UTF-8.
func cutHead(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n < 0 {
		n = 0
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// cutTail returns the last n bytes of s, advanced to a rune boundary.
func cutTail(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n < 0 {
		n = 0
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
