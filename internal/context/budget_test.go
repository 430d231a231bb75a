package ctxengine_test

import (
	"strings"
	"testing"

	ctxengine "github.com/flemzord/recall/internal/context"
)

func newAllocator(budget int) *ctxengine.Allocator {
	return ctxengine.NewAllocator(ctxengine.Config{MaxContextChars: budget})
}

func block(n int) string {
	return strings.Repeat("a", n)
}

// ---------------------------------------------------------------------------
// Fill — happy path
// ---------------------------------------------------------------------------

func TestAllocator_EverythingFits(t *testing.T) {
	t.Parallel()

	alloc := newAllocator(1000)
	result := alloc.Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{block(100), block(100)}},
		{Tier: ctxengine.TierToday, Blocks: []string{block(200)}},
		{Tier: ctxengine.TierYesterday, Blocks: []string{block(50)}},
		{Tier: ctxengine.TierOlder, Blocks: []string{block(50)}},
	})

	if len(result.Blocks) != 5 {
		t.Errorf("blocks = %d, want 5", len(result.Blocks))
	}
	if result.Used != 500 {
		t.Errorf("Used = %d, want 500", result.Used)
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}
}

func TestAllocator_EmptyInput(t *testing.T) {
	t.Parallel()

	result := newAllocator(1000).Fill(nil)

	if len(result.Blocks) != 0 || result.Used != 0 {
		t.Errorf("Fill(nil) = %d blocks / %d used, want 0/0", len(result.Blocks), result.Used)
	}
}

// ---------------------------------------------------------------------------
// Fill — budget invariant
// ---------------------------------------------------------------------------

func TestAllocator_BudgetInvariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		budget int
		tiers  []ctxengine.TierBlocks
	}{
		{
			name:   "exact_fit",
			budget: 300,
			tiers: []ctxengine.TierBlocks{
				{Tier: ctxengine.TierActiveThread, Blocks: []string{block(300)}},
			},
		},
		{
			name:   "overflow_in_today",
			budget: 500,
			tiers: []ctxengine.TierBlocks{
				{Tier: ctxengine.TierActiveThread, Blocks: []string{block(200)}},
				{Tier: ctxengine.TierToday, Blocks: []string{block(400), block(100)}},
			},
		},
		{
			name:   "truncated_active_thread",
			budget: 1000,
			tiers: []ctxengine.TierBlocks{
				{Tier: ctxengine.TierActiveThread, Blocks: []string{block(5000)}},
			},
		},
		{
			name:   "many_small_blocks",
			budget: 250,
			tiers: []ctxengine.TierBlocks{
				{Tier: ctxengine.TierOlder, Blocks: []string{block(80), block(80), block(80), block(80)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := newAllocator(tt.budget).Fill(tt.tiers)

			total := 0
			for _, b := range result.Blocks {
				total += len(b)
			}
			if total > tt.budget {
				t.Errorf("concatenated output = %d chars, exceeds budget %d", total, tt.budget)
			}
			if result.Used > tt.budget {
				t.Errorf("Used = %d, exceeds budget %d", result.Used, tt.budget)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Fill — head/tail truncation
// ---------------------------------------------------------------------------

func TestAllocator_TruncatesActiveThread(t *testing.T) {
	t.Parallel()

	// Scenario: a 50,000-char block against a 10,000-char budget.
	big := "HEAD" + block(50000) + "TAIL"
	result := newAllocator(10000).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{big}},
		{Tier: ctxengine.TierToday, Blocks: []string{block(100)}},
	})

	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if len(result.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 (truncation stops processing entirely)", len(result.Blocks))
	}
	if result.Used != 10000 {
		t.Errorf("Used = %d, want the full budget 10000", result.Used)
	}

	out := result.Blocks[0]
	if !strings.Contains(out, ctxengine.TruncationMarker) {
		t.Error("output missing truncation marker")
	}
	if !strings.HasPrefix(out, "HEAD") {
		t.Error("head segment not preserved")
	}
	if !strings.HasSuffix(out, "TAIL") {
		t.Error("tail segment not preserved")
	}
	if len(out) > 10000 {
		t.Errorf("truncated block = %d chars, exceeds budget", len(out))
	}

	// 70% head + 20% tail of the remaining budget.
	parts := strings.SplitN(out, ctxengine.TruncationMarker, 2)
	if len(parts) != 2 {
		t.Fatal("marker does not split output into head and tail")
	}
	if len(parts[0]) != 7000 {
		t.Errorf("head = %d chars, want 7000", len(parts[0]))
	}
	if len(parts[1]) != 2000 {
		t.Errorf("tail = %d chars, want 2000", len(parts[1]))
	}
}

func TestAllocator_TruncationUsesRemainingBudget(t *testing.T) {
	t.Parallel()

	// 400 chars already consumed; the next block truncates into the 600
	// remaining, not the full 1000.
	result := newAllocator(1000).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{block(400), block(5000)}},
	})

	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if len(result.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(result.Blocks))
	}

	truncated := result.Blocks[1]
	parts := strings.SplitN(truncated, ctxengine.TruncationMarker, 2)
	if len(parts) != 2 {
		t.Fatal("marker missing from truncated block")
	}
	if len(parts[0]) != 420 { // 70% of 600
		t.Errorf("head = %d chars, want 420", len(parts[0]))
	}
	if len(parts[1]) != 120 { // 20% of 600
		t.Errorf("tail = %d chars, want 120", len(parts[1]))
	}
}

func TestAllocator_BelowFloorDropsInsteadOfTruncating(t *testing.T) {
	t.Parallel()

	// Scenario: 100-char budget is under the 200-char floor, so the large
	// active-thread block is dropped, not truncated.
	result := newAllocator(100).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{block(5000)}},
	})

	if result.Truncated {
		t.Error("Truncated = true, want false below the floor")
	}
	if len(result.Blocks) != 0 {
		t.Errorf("blocks = %d, want 0 (dropped entirely)", len(result.Blocks))
	}
}

func TestAllocator_NonFirstTierNeverTruncates(t *testing.T) {
	t.Parallel()

	// Plenty of budget remains, but the oversized block is in Today:
	// it is dropped and the fill moves on.
	result := newAllocator(1000).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{block(100)}},
		{Tier: ctxengine.TierToday, Blocks: []string{block(5000)}},
		{Tier: ctxengine.TierYesterday, Blocks: []string{block(100)}},
	})

	if result.Truncated {
		t.Error("Truncated = true, want false (only the live thread truncates)")
	}
	for _, b := range result.Blocks {
		if strings.Contains(b, ctxengine.TruncationMarker) {
			t.Error("non-first tier block was truncated")
		}
	}
}

// ---------------------------------------------------------------------------
// Fill — tier abandonment
// ---------------------------------------------------------------------------

func TestAllocator_AbandonedTierDoesNotStopLaterTiers(t *testing.T) {
	t.Parallel()

	// Today's first block does not fit; Yesterday's small block still gets
	// a chance at the remaining budget.
	yesterdayBlock := block(50)
	result := newAllocator(500).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{block(400)}},
		{Tier: ctxengine.TierToday, Blocks: []string{block(300), block(10)}},
		{Tier: ctxengine.TierYesterday, Blocks: []string{yesterdayBlock}},
	})

	if len(result.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (active thread + yesterday)", len(result.Blocks))
	}
	if result.Blocks[1] != yesterdayBlock {
		t.Error("yesterday block missing after today tier was abandoned")
	}
	if result.Used != 450 {
		t.Errorf("Used = %d, want 450", result.Used)
	}
}

func TestAllocator_AbandonSkipsRestOfTier(t *testing.T) {
	t.Parallel()

	// Once a tier's block fails to fit, the rest of that tier is skipped
	// even if later blocks in it would have fit.
	result := newAllocator(500).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierToday, Blocks: []string{block(600), block(10)}},
	})

	if len(result.Blocks) != 0 {
		t.Errorf("blocks = %d, want 0 (tier abandoned at first miss)", len(result.Blocks))
	}
}

// ---------------------------------------------------------------------------
// Fill — tier priority
// ---------------------------------------------------------------------------

func TestAllocator_PriorityOrderPreserved(t *testing.T) {
	t.Parallel()

	at := "AT:" + block(100)
	today := "TD:" + block(100)
	older := "OL:" + block(100)

	result := newAllocator(10000).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{at}},
		{Tier: ctxengine.TierToday, Blocks: []string{today}},
		{Tier: ctxengine.TierYesterday, Blocks: nil},
		{Tier: ctxengine.TierOlder, Blocks: []string{older}},
	})

	if len(result.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(result.Blocks))
	}
	if result.Blocks[0] != at || result.Blocks[1] != today || result.Blocks[2] != older {
		t.Error("blocks out of tier priority order")
	}
}

func TestAllocator_MultibyteSafeCuts(t *testing.T) {
	t.Parallel()

	// A block of multibyte runes must never be cut mid-rune.
	big := strings.Repeat("é", 3000) // 2 bytes each
	result := newAllocator(1000).Fill([]ctxengine.TierBlocks{
		{Tier: ctxengine.TierActiveThread, Blocks: []string{big}},
	})

	if !result.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	for _, b := range result.Blocks {
		if !strings.ContainsRune(b, 'é') {
			continue
		}
		if strings.ContainsRune(b, '�') {
			t.Error("output contains replacement character (cut mid-rune)")
		}
	}
}
