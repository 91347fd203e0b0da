package engine

import (
	"sort"

	"seller_portal_backend/internal/catalog"
)

// tieScale spreads raw scores far enough apart that the per-option tie bonus
// can only ever decide exact raw ties.
const tieScale = 8

// Result is a deterministic recommendation: the single best option, up to two
// ranked alternatives, and the scoring detail for diagnostics.
type Result struct {
	Best      catalog.Option
	Secondary []catalog.Option
	Excluded  []catalog.Option
	Scores    map[catalog.Option]int
}

// Engine scores normalized answers against the option catalog. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	registry *catalog.Registry
}

// New creates an engine bound to the given option catalog.
func New(registry *catalog.Registry) *Engine {
	return &Engine{registry: registry}
}

// Registry returns the option catalog the engine was built with.
func (e *Engine) Registry() *catalog.Registry {
	return e.registry
}

// Recommend produces the recommendation for a normalized submission. The
// same answers always yield the same result: scoring is pure integer
// arithmetic and ties resolve by canonical option order.
func (e *Engine) Recommend(a Answers) Result {
	eligible, excluded := e.eligible(a)
	if len(eligible) == 0 {
		return Result{
			Best:      catalog.OptionCash,
			Secondary: []catalog.Option{},
			Excluded:  excluded,
			Scores:    map[catalog.Option]int{},
		}
	}

	rawScores := make(map[catalog.Option]int, len(eligible))
	for _, option := range eligible {
		rawScores[option] = e.score(option, a)
	}

	best := argMax(eligible, rawScores)
	best = e.applyFastTrackOverride(best, a, rawScores)
	best = demoteSecondaryOnly(best, eligible, rawScores)

	return Result{
		Best:      best,
		Secondary: pickSecondary(best, eligible, rawScores, a),
		Excluded:  excluded,
		Scores:    rawScores,
	}
}

// eligible applies the hard exclusion rules and returns the surviving options
// and the excluded ones, both in canonical order.
func (e *Engine) eligible(a Answers) (eligible, excluded []catalog.Option) {
	var out uint8

	switch a.Speed {
	case SpeedVeryFast, SpeedFast:
		out |= optionBit(catalog.OptionTraditional) |
			optionBit(catalog.OptionDirectList) |
			optionBit(catalog.OptionUplist) |
			optionBit(catalog.OptionPriceLaunch)
	case SpeedQuick:
		out |= optionBit(catalog.OptionPriceLaunch)
	}

	if a.Repairs.HasBlocking() {
		out |= optionBit(catalog.OptionTraditional) |
			optionBit(catalog.OptionDirectList) |
			optionBit(catalog.OptionUplist)
	}

	for _, option := range catalog.AllOptions() {
		if out&optionBit(option) != 0 {
			excluded = append(excluded, option)
		} else {
			eligible = append(eligible, option)
		}
	}
	return eligible, excluded
}

func optionBit(o catalog.Option) uint8 {
	return 1 << uint(o)
}

// finalScore folds the canonical tie bonus into a raw score. Earlier options
// in the catalog get a strictly larger bonus, and the bonus stays below
// tieScale, so it only matters when raw scores are exactly equal.
func finalScore(o catalog.Option, raw int) int {
	return raw*tieScale + (catalog.NumOptions - int(o))
}

func argMax(options []catalog.Option, rawScores map[catalog.Option]int) catalog.Option {
	best := options[0]
	bestScore := finalScore(best, rawScores[best])
	for _, option := range options[1:] {
		if s := finalScore(option, rawScores[option]); s > bestScore {
			best = option
			bestScore = s
		}
	}
	return best
}

// applyFastTrackOverride forces a fast-capable winner when the seller needs
// to close within about a month. A price-first seller is steered to the
// equity bridge, everyone else to a cash sale, regardless of scores.
func (e *Engine) applyFastTrackOverride(best catalog.Option, a Answers, rawScores map[catalog.Option]int) catalog.Option {
	if !a.Speed.IsFastTrack() {
		return best
	}

	_, bridgeEligible := rawScores[catalog.OptionEquityBridge]
	_, cashEligible := rawScores[catalog.OptionCash]

	switch {
	case bridgeEligible && a.Priorities.Rank(catalog.PriorityMaximizePrice) == 1:
		return catalog.OptionEquityBridge
	case cashEligible:
		return catalog.OptionCash
	case bridgeEligible:
		return catalog.OptionEquityBridge
	default:
		return best
	}
}

// demoteSecondaryOnly replaces a secondary-only winner with the best
// primary-capable option. If nothing primary-capable survived exclusion the
// scored winner stands.
func demoteSecondaryOnly(best catalog.Option, eligible []catalog.Option, rawScores map[catalog.Option]int) catalog.Option {
	if !best.SecondaryOnly() {
		return best
	}

	primaries := make([]catalog.Option, 0, len(eligible))
	for _, option := range eligible {
		if !option.SecondaryOnly() {
			primaries = append(primaries, option)
		}
	}
	if len(primaries) == 0 {
		return best
	}
	return argMax(primaries, rawScores)
}

// pickSecondary selects up to two alternatives by score. Seller financing is
// only ever suggested to a price-first seller who is not in a hurry and not
// chasing a clean break, and when suggested it is always listed last.
func pickSecondary(best catalog.Option, eligible []catalog.Option, rawScores map[catalog.Option]int, a Answers) []catalog.Option {
	candidates := make([]catalog.Option, 0, len(eligible))
	for _, option := range eligible {
		if option == best {
			continue
		}
		if option == catalog.OptionSellerFinance && !sellerFinanceAllowed(a) {
			continue
		}
		candidates = append(candidates, option)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return finalScore(candidates[i], rawScores[candidates[i]]) >
			finalScore(candidates[j], rawScores[candidates[j]])
	})

	if len(candidates) > 2 {
		candidates = candidates[:2]
	}

	for i, option := range candidates {
		if option.AlwaysLastSecondary() && i != len(candidates)-1 {
			copy(candidates[i:], candidates[i+1:])
			candidates[len(candidates)-1] = option
		}
	}

	return candidates
}

func sellerFinanceAllowed(a Answers) bool {
	return a.Priorities.TopTwo(catalog.PriorityMaximizePrice) &&
		!a.Priorities.TopTwo(catalog.PrioritySellQuickly) &&
		!a.Priorities.TopTwo(catalog.PriorityFinancialFreshStart)
}

// score computes the raw rule score for one option. Every case enumerates
// its rule terms explicitly so the table reads like the underlying playbook.
func (e *Engine) score(option catalog.Option, a Answers) int {
	switch option {
	case catalog.OptionCash:
		return scoreCash(a)
	case catalog.OptionTraditional:
		return scoreTraditional(a)
	case catalog.OptionDirectList:
		return scoreDirectList(a)
	case catalog.OptionEquityBridge:
		return scoreEquityBridge(a)
	case catalog.OptionPriceLaunch:
		return scorePriceLaunch(a)
	case catalog.OptionUplist:
		return scoreUplist(a)
	case catalog.OptionSellerFinance:
		return scoreSellerFinance(a)
	}
	return 0
}

func scoreCash(a Answers) int {
	score := 0

	switch a.Speed {
	case SpeedVeryFast:
		score += 80
	case SpeedFast:
		score += 60
	case SpeedQuick:
		score += 30
	}

	if a.Repairs.Has(RepairStructural) {
		score += 30
	}
	if a.Repairs.Has(RepairBigTicket) {
		score += 30
	}
	if a.Repairs.Has(RepairNonLoanable) {
		score += 30
	}
	if a.Repairs.Has(RepairMinor) {
		score += 10
	}

	switch a.Updates {
	case UpdatesDatedFullCosmetic:
		score += 20
	case UpdatesNotUpdatedWear:
		score += 10
	}

	if a.Avoid.Has(AvoidShowings) {
		score += 10
	}
	if a.Avoid.Has(AvoidNegotiations) {
		score += 10
	}
	if a.Avoid.Has(AvoidExcessiveTime) {
		score += 10
	}

	// A cash sale trades price for certainty, so price-first sellers are
	// pushed away hard.
	if a.Priorities.TopTwo(catalog.PriorityMaximizePrice) {
		score -= 15 * a.Priorities.Weight(catalog.PriorityMaximizePrice)
	}
	score += 2 * a.Priorities.Weight(catalog.PrioritySellQuickly)

	return score
}

func scoreTraditional(a Answers) int {
	score := 0

	switch a.Speed {
	case SpeedNoHurry:
		score += 60
	case SpeedStandard:
		score += 40
	case SpeedQuick:
		score += 10
	}

	switch a.Updates {
	case UpdatesTopOfMarket:
		score += 40
	case UpdatesSemiRecent:
		score += 25
	case UpdatesNiceNotUpdated:
		score += 10
	}

	if a.Repairs.Empty() {
		score += 20
	} else if !a.Repairs.HasBlocking() {
		score += 5
	}

	score += 10 * a.Priorities.Weight(catalog.PriorityMaximizePrice)
	score -= 8 * a.Priorities.Weight(catalog.PriorityAvoidHassle)

	if a.Avoid.Has(AvoidShowings) {
		score -= 30
	}
	if a.Avoid.Has(AvoidNegotiations) {
		score -= 20
	}
	if a.Avoid.Has(AvoidExcessiveTime) {
		score -= 15
	}

	return score
}

func scoreDirectList(a Answers) int {
	score := 0

	switch a.Speed {
	case SpeedNoHurry:
		score += 50
	case SpeedStandard:
		score += 40
	case SpeedQuick:
		score += 15
	}

	switch a.Updates {
	case UpdatesTopOfMarket:
		score += 35
	case UpdatesSemiRecent:
		score += 25
	case UpdatesNiceNotUpdated:
		score += 15
	}

	if a.Repairs.Empty() {
		score += 20
	} else if !a.Repairs.HasBlocking() {
		score += 10
	}

	score += 10 * a.Priorities.Weight(catalog.PriorityMaximizePrice)
	score -= 6 * a.Priorities.Weight(catalog.PriorityAvoidHassle)

	if a.Avoid.Has(AvoidShowings) {
		score -= 25
	}
	if a.Avoid.Has(AvoidNegotiations) {
		score -= 25
	}
	if a.Avoid.Has(AvoidExcessiveTime) {
		score -= 10
	}

	return score
}

func scoreEquityBridge(a Answers) int {
	score := 0

	switch a.Speed {
	case SpeedVeryFast:
		score += 40
	case SpeedFast:
		score += 60
	case SpeedQuick:
		score += 20
	}

	// The bridge only makes sense under time pressure: it pays off for a
	// seller who wants both speed and price, and is steered away from
	// price-first sellers who have time to list.
	switch a.Speed {
	case SpeedVeryFast, SpeedFast, SpeedQuick:
		score += 8 * a.Priorities.Weight(catalog.PriorityMaximizePrice)
		score += 8 * a.Priorities.Weight(catalog.PriorityFinancialFreshStart)
	default:
		score -= 12 * a.Priorities.Weight(catalog.PriorityMaximizePrice)
	}

	if a.Repairs.HasBlocking() {
		score += 10
	}

	return score
}

func scorePriceLaunch(a Answers) int {
	score := 0

	switch a.Speed {
	case SpeedNoHurry:
		score += 50
	case SpeedStandard:
		score += 30
	}

	switch a.Updates {
	case UpdatesDatedFullCosmetic:
		score += 40
	case UpdatesNotUpdatedWear:
		score += 25
	case UpdatesNiceNotUpdated:
		score += 10
	}

	if a.Repairs.Has(RepairStructural) {
		score += 20
	}
	if a.Repairs.Has(RepairBigTicket) {
		score += 20
	}
	if a.Repairs.Has(RepairNonLoanable) {
		score += 10
	}
	if a.Repairs.Has(RepairMinor) {
		score += 15
	}

	score += 6 * a.Priorities.Weight(catalog.PriorityMaximizePrice)

	if a.Priorities.TopTwo(catalog.PrioritySellQuickly) {
		score -= 20
	}

	return score
}

func scoreUplist(a Answers) int {
	score := 0

	score += 9 * a.Priorities.Weight(catalog.PriorityAvoidHassle)

	if a.Avoid.Has(AvoidExcessiveTime) {
		score += 15
	}
	if a.Avoid.Has(AvoidNegotiations) {
		score += 10
	}
	if a.Avoid.Has(AvoidShowings) {
		score += 5
	}

	switch a.Speed {
	case SpeedNoHurry, SpeedStandard:
		score += 10
	}

	return score
}

func scoreSellerFinance(a Answers) int {
	// Niche product: it starts in the hole and only a patient, price-first
	// seller can dig it out.
	score := -40

	score += 8 * a.Priorities.Weight(catalog.PriorityMaximizePrice)

	if a.Priorities.TopTwo(catalog.PrioritySellQuickly) {
		score -= 80
	}
	if a.Priorities.TopTwo(catalog.PriorityFinancialFreshStart) {
		score -= 80
	}

	if a.Speed == SpeedNoHurry {
		score += 10
	}

	return score
}
