package engine

import (
	"testing"

	"seller_portal_backend/internal/catalog"
)

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(QuizAnswers{})

	if got.Speed != SpeedStandard {
		t.Errorf("default speed = %v, want standard", got.Speed)
	}
	if got.Updates != UpdatesNiceNotUpdated {
		t.Errorf("default updates = %v, want nice-not-updated", got.Updates)
	}
	if !got.Repairs.Empty() {
		t.Errorf("default repairs should be empty, got %v", got.Repairs)
	}
	if !got.Avoid.Empty() {
		t.Errorf("default avoid should be empty, got %v", got.Avoid)
	}

	wantRanks := Ranks{
		catalog.PriorityMaximizePrice:       1,
		catalog.PrioritySellQuickly:         2,
		catalog.PriorityAvoidRepairs:        3,
		catalog.PriorityAvoidHassle:         4,
		catalog.PriorityFinancialFreshStart: 5,
	}
	if got.Priorities != wantRanks {
		t.Errorf("default ranks = %v, want canonical order %v", got.Priorities, wantRanks)
	}
}

func TestNormalizeCanonicalizesIdentifiers(t *testing.T) {
	got := Normalize(QuizAnswers{
		Timeline: "  Very_Fast ",
		Updates:  "TOP_OF_MARKET",
		Repairs:  []string{"Big_Ticket"},
		Avoid:    []string{" EXCESSIVE-TIME "},
	})

	if got.Speed != SpeedVeryFast {
		t.Errorf("speed = %v, want very-fast", got.Speed)
	}
	if got.Updates != UpdatesTopOfMarket {
		t.Errorf("updates = %v, want top-of-market", got.Updates)
	}
	if !got.Repairs.Has(RepairBigTicket) {
		t.Error("big-ticket repair not recognized")
	}
	if !got.Avoid.Has(AvoidExcessiveTime) {
		t.Error("excessive-time avoidance not recognized")
	}
}

func TestNormalizeDropsUnknownSetEntries(t *testing.T) {
	got := Normalize(QuizAnswers{
		Repairs: []string{"none", "structural", "asbestos"},
		Avoid:   []string{"none-open", "showings", "paperwork"},
	})

	if got.Repairs != NewRepairSet(RepairStructural) {
		t.Errorf("repairs = %v, want only structural", got.Repairs)
	}
	if got.Avoid != NewAvoidSet(AvoidShowings) {
		t.Errorf("avoid = %v, want only showings", got.Avoid)
	}
}

func TestNormalizeUnknownScalarsFallBack(t *testing.T) {
	got := Normalize(QuizAnswers{Timeline: "yesterday", Updates: "mid-century"})

	if got.Speed != SpeedStandard {
		t.Errorf("unknown timeline should fall back to standard, got %v", got.Speed)
	}
	if got.Updates != UpdatesNiceNotUpdated {
		t.Errorf("unknown updates should fall back to nice-not-updated, got %v", got.Updates)
	}
}

func TestNormalizeCompletesPartialRanking(t *testing.T) {
	got := Normalize(QuizAnswers{
		Priorities: []string{"avoid-hassle", "maximize_price"},
	})

	want := Ranks{
		catalog.PriorityAvoidHassle:         1,
		catalog.PriorityMaximizePrice:       2,
		catalog.PrioritySellQuickly:         3,
		catalog.PriorityAvoidRepairs:        4,
		catalog.PriorityFinancialFreshStart: 5,
	}
	if got.Priorities != want {
		t.Errorf("ranks = %v, want %v", got.Priorities, want)
	}
}

func TestNormalizeIgnoresDuplicateAndUnknownPriorities(t *testing.T) {
	got := Normalize(QuizAnswers{
		Priorities: []string{"maximize-price", "MAXIMIZE_PRICE", "world-peace", "sell-quickly"},
	})

	if got.Priorities.Rank(catalog.PriorityMaximizePrice) != 1 {
		t.Errorf("maximize_price rank = %d, want 1", got.Priorities.Rank(catalog.PriorityMaximizePrice))
	}
	if got.Priorities.Rank(catalog.PrioritySellQuickly) != 2 {
		t.Errorf("sell_quickly rank = %d, want 2", got.Priorities.Rank(catalog.PrioritySellQuickly))
	}
}

func TestNormalizeRankTotality(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{"sell-quickly"},
		{"financial-fresh-start", "avoid-repairs"},
		{"bogus", "avoid-hassle", "bogus", "maximize-price"},
		{"maximize-price", "sell-quickly", "avoid-repairs", "avoid-hassle", "financial-fresh-start"},
	}

	for _, priorities := range inputs {
		got := Normalize(QuizAnswers{Priorities: priorities})

		seen := make(map[int]bool, catalog.NumPriorities)
		for _, p := range catalog.AllPriorities() {
			rank := got.Priorities.Rank(p)
			if rank < 1 || rank > catalog.NumPriorities {
				t.Fatalf("priorities %v: %s rank = %d, out of range", priorities, p.Key(), rank)
			}
			if seen[rank] {
				t.Fatalf("priorities %v: duplicate rank %d", priorities, rank)
			}
			seen[rank] = true
		}
	}
}
