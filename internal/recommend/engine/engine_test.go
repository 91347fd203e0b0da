package engine

import (
	"reflect"
	"testing"

	"seller_portal_backend/internal/catalog"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := catalog.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return New(reg)
}

func TestRecommendIsDeterministic(t *testing.T) {
	eng := newTestEngine(t)
	answers := Normalize(QuizAnswers{
		Timeline:   "quick",
		Updates:    "not-updated-wear",
		Repairs:    []string{"minor"},
		Avoid:      []string{"negotiations"},
		Priorities: []string{"financial-fresh-start", "sell-quickly"},
	})

	first := eng.Recommend(answers)
	for i := 0; i < 50; i++ {
		if got := eng.Recommend(answers); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: got %+v, want %+v", i, got, first)
		}
	}
}

func TestRecommendDefaultSubmission(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{}))

	if got.Best != catalog.OptionDirectList {
		t.Errorf("best = %s, want direct_list", got.Best.Key())
	}
	want := []catalog.Option{catalog.OptionTraditional, catalog.OptionPriceLaunch}
	if !reflect.DeepEqual(got.Secondary, want) {
		t.Errorf("secondary = %v, want %v", keys(got.Secondary), keys(want))
	}
	if len(got.Excluded) != 0 {
		t.Errorf("excluded = %v, want none", keys(got.Excluded))
	}
}

func TestRecommendFastPriceFirstPrefersEquityBridge(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{
		Timeline:   "fast",
		Priorities: []string{"maximize-price", "avoid-hassle"},
	}))

	if got.Best != catalog.OptionEquityBridge {
		t.Fatalf("best = %s, want equity_bridge", got.Best.Key())
	}

	want := []catalog.Option{catalog.OptionCash, catalog.OptionSellerFinance}
	if !reflect.DeepEqual(got.Secondary, want) {
		t.Errorf("secondary = %v, want %v", keys(got.Secondary), keys(want))
	}

	wantExcluded := []catalog.Option{
		catalog.OptionTraditional,
		catalog.OptionDirectList,
		catalog.OptionPriceLaunch,
		catalog.OptionUplist,
	}
	if !reflect.DeepEqual(got.Excluded, wantExcluded) {
		t.Errorf("excluded = %v, want %v", keys(got.Excluded), keys(wantExcluded))
	}
}

func TestRecommendVeryFastWithoutPriceFocusPrefersCash(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{
		Timeline:   "very-fast",
		Priorities: []string{"sell-quickly"},
	}))

	if got.Best != catalog.OptionCash {
		t.Fatalf("best = %s, want cash", got.Best.Key())
	}

	want := []catalog.Option{catalog.OptionEquityBridge}
	if !reflect.DeepEqual(got.Secondary, want) {
		t.Errorf("secondary = %v, want %v", keys(got.Secondary), keys(want))
	}
}

func TestRecommendPatientTopOfMarketSeller(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{
		Timeline:   "no-hurry",
		Updates:    "top-of-market",
		Repairs:    []string{"none"},
		Priorities: []string{"maximize-price"},
	}))

	if got.Best != catalog.OptionTraditional {
		t.Fatalf("best = %s, want traditional", got.Best.Key())
	}

	want := []catalog.Option{catalog.OptionDirectList, catalog.OptionPriceLaunch}
	if !reflect.DeepEqual(got.Secondary, want) {
		t.Errorf("secondary = %v, want %v", keys(got.Secondary), keys(want))
	}
}

func TestRecommendBlockingRepairsExcludeListingPaths(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{
		Repairs: []string{"structural"},
	}))

	wantExcluded := []catalog.Option{
		catalog.OptionTraditional,
		catalog.OptionDirectList,
		catalog.OptionUplist,
	}
	if !reflect.DeepEqual(got.Excluded, wantExcluded) {
		t.Fatalf("excluded = %v, want %v", keys(got.Excluded), keys(wantExcluded))
	}

	if got.Best != catalog.OptionPriceLaunch {
		t.Errorf("best = %s, want price_launch", got.Best.Key())
	}
	want := []catalog.Option{catalog.OptionCash, catalog.OptionEquityBridge}
	if !reflect.DeepEqual(got.Secondary, want) {
		t.Errorf("secondary = %v, want %v", keys(got.Secondary), keys(want))
	}
}

func TestRecommendQuickTimelineExcludesOnlyPriceLaunch(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{Timeline: "quick"}))

	want := []catalog.Option{catalog.OptionPriceLaunch}
	if !reflect.DeepEqual(got.Excluded, want) {
		t.Errorf("excluded = %v, want %v", keys(got.Excluded), keys(want))
	}
}

func TestRecommendDemotesSecondaryOnlyWinner(t *testing.T) {
	eng := newTestEngine(t)
	got := eng.Recommend(Normalize(QuizAnswers{
		Timeline:   "no-hurry",
		Avoid:      []string{"showings", "negotiations", "excessive-time"},
		Priorities: []string{"avoid-hassle"},
	}))

	if got.Best.SecondaryOnly() {
		t.Fatalf("secondary-only option %s surfaced as best", got.Best.Key())
	}
	if got.Best != catalog.OptionPriceLaunch {
		t.Errorf("best = %s, want price_launch", got.Best.Key())
	}
	if len(got.Secondary) == 0 || got.Secondary[0] != catalog.OptionUplist {
		t.Errorf("secondary = %v, want uplist first", keys(got.Secondary))
	}
}

// TestRecommendInvariantsExhaustive sweeps every normalized input combination
// and checks the structural guarantees that must hold for all of them.
func TestRecommendInvariantsExhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive sweep in short mode")
	}

	eng := newTestEngine(t)
	speeds := []Speed{SpeedVeryFast, SpeedFast, SpeedQuick, SpeedStandard, SpeedNoHurry}
	updates := []Updates{
		UpdatesTopOfMarket, UpdatesSemiRecent, UpdatesNiceNotUpdated,
		UpdatesNotUpdatedWear, UpdatesDatedFullCosmetic,
	}

	checked := 0
	for _, speed := range speeds {
		for _, update := range updates {
			for repairs := RepairSet(0); repairs < 1<<uint(numRepairs); repairs++ {
				for avoid := AvoidSet(0); avoid < 1<<uint(numAvoidances); avoid++ {
					for _, ranks := range allRankings() {
						answers := Answers{
							Speed:      speed,
							Updates:    update,
							Repairs:    repairs,
							Avoid:      avoid,
							Priorities: ranks,
						}
						checkInvariants(t, eng.Recommend(answers), answers)
						checked++
					}
				}
			}
		}
	}

	if checked != 5*5*16*8*120 {
		t.Fatalf("sweep covered %d combinations, want %d", checked, 5*5*16*8*120)
	}
}

func checkInvariants(t *testing.T, got Result, answers Answers) {
	t.Helper()

	if got.Best.SecondaryOnly() {
		t.Fatalf("answers %+v: secondary-only option %s is best", answers, got.Best.Key())
	}
	if len(got.Secondary) > 2 {
		t.Fatalf("answers %+v: %d alternatives, want at most 2", answers, len(got.Secondary))
	}

	for i, option := range got.Secondary {
		if option == got.Best {
			t.Fatalf("answers %+v: best %s repeated in alternatives", answers, option.Key())
		}
		if option == catalog.OptionSellerFinance {
			if i != len(got.Secondary)-1 {
				t.Fatalf("answers %+v: seller_finance not listed last", answers)
			}
			if !sellerFinanceAllowed(answers) {
				t.Fatalf("answers %+v: seller_finance suggested despite gating", answers)
			}
		}
		for _, excluded := range got.Excluded {
			if option == excluded {
				t.Fatalf("answers %+v: excluded option %s in alternatives", answers, option.Key())
			}
		}
	}

	for _, excluded := range got.Excluded {
		if got.Best == excluded {
			t.Fatalf("answers %+v: excluded option %s is best", answers, got.Best.Key())
		}
	}
}

// allRankings enumerates all 120 permutations of the five priorities as
// complete rank assignments.
func allRankings() []Ranks {
	priorities := catalog.AllPriorities()
	var out []Ranks

	var permute func(remaining []catalog.Priority, current []catalog.Priority)
	permute = func(remaining, current []catalog.Priority) {
		if len(remaining) == 0 {
			var ranks Ranks
			for i, p := range current {
				ranks[p] = i + 1
			}
			out = append(out, ranks)
			return
		}
		for i := range remaining {
			next := make([]catalog.Priority, 0, len(remaining)-1)
			next = append(next, remaining[:i]...)
			next = append(next, remaining[i+1:]...)

			chosen := make([]catalog.Priority, 0, len(current)+1)
			chosen = append(chosen, current...)
			chosen = append(chosen, remaining[i])
			permute(next, chosen)
		}
	}
	permute(priorities, nil)

	return out
}

func keys(options []catalog.Option) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Key())
	}
	return out
}
