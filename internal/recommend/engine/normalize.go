package engine

import (
	"strings"

	"seller_portal_backend/internal/catalog"
)

// QuizAnswers is a raw questionnaire submission as received over the wire.
// Identifiers are free-form strings; unknown values are tolerated.
type QuizAnswers struct {
	Timeline   string
	Updates    string
	Repairs    []string
	Avoid      []string
	Priorities []string
}

// canonicalID lowercases, trims and unifies separators so that minor client
// drift ("Very_Fast", " very-fast ") resolves to the same identifier.
func canonicalID(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(id, "_", "-")
}

// Normalize converts a raw submission into a fully defined Answers value.
// Unknown identifiers never fail the request: scalar fields fall back to a
// neutral default, set entries are dropped, and partial priority rankings
// are completed in canonical priority order.
func Normalize(q QuizAnswers) Answers {
	return Answers{
		Speed:      normalizeSpeed(q.Timeline),
		Updates:    normalizeUpdates(q.Updates),
		Repairs:    normalizeRepairs(q.Repairs),
		Avoid:      normalizeAvoid(q.Avoid),
		Priorities: normalizePriorities(q.Priorities),
	}
}

func normalizeSpeed(raw string) Speed {
	switch canonicalID(raw) {
	case "very-fast":
		return SpeedVeryFast
	case "fast":
		return SpeedFast
	case "quick":
		return SpeedQuick
	case "standard":
		return SpeedStandard
	case "no-hurry":
		return SpeedNoHurry
	default:
		return SpeedStandard
	}
}

func normalizeUpdates(raw string) Updates {
	switch canonicalID(raw) {
	case "top-of-market":
		return UpdatesTopOfMarket
	case "updated-semi-recent":
		return UpdatesSemiRecent
	case "nice-not-updated":
		return UpdatesNiceNotUpdated
	case "not-updated-wear":
		return UpdatesNotUpdatedWear
	case "dated-full-cosmetic":
		return UpdatesDatedFullCosmetic
	default:
		return UpdatesNiceNotUpdated
	}
}

func normalizeRepairs(raw []string) RepairSet {
	var set RepairSet
	for _, item := range raw {
		switch canonicalID(item) {
		case "structural":
			set |= 1 << uint(RepairStructural)
		case "big-ticket":
			set |= 1 << uint(RepairBigTicket)
		case "non-loanable":
			set |= 1 << uint(RepairNonLoanable)
		case "minor":
			set |= 1 << uint(RepairMinor)
		}
	}
	return set
}

func normalizeAvoid(raw []string) AvoidSet {
	var set AvoidSet
	for _, item := range raw {
		switch canonicalID(item) {
		case "showings":
			set |= 1 << uint(AvoidShowings)
		case "negotiations":
			set |= 1 << uint(AvoidNegotiations)
		case "excessive-time":
			set |= 1 << uint(AvoidExcessiveTime)
		}
	}
	return set
}

func parsePriority(raw string) (catalog.Priority, bool) {
	switch canonicalID(raw) {
	case "maximize-price":
		return catalog.PriorityMaximizePrice, true
	case "sell-quickly":
		return catalog.PrioritySellQuickly, true
	case "avoid-repairs":
		return catalog.PriorityAvoidRepairs, true
	case "avoid-hassle":
		return catalog.PriorityAvoidHassle, true
	case "financial-fresh-start":
		return catalog.PriorityFinancialFreshStart, true
	default:
		return 0, false
	}
}

// normalizePriorities assigns every priority a rank between 1 and 5.
// Recognized entries keep their submitted order (first occurrence wins);
// anything the seller left unranked is appended in canonical order.
func normalizePriorities(raw []string) Ranks {
	var ranks Ranks
	next := 1

	for _, item := range raw {
		priority, ok := parsePriority(item)
		if !ok || ranks[priority] != 0 {
			continue
		}
		ranks[priority] = next
		next++
	}

	for _, priority := range catalog.AllPriorities() {
		if ranks[priority] == 0 {
			ranks[priority] = next
			next++
		}
	}

	return ranks
}
