// Package engine implements the deterministic scoring engine that maps
// normalized questionnaire answers to a ranked set of selling options.
package engine

import "seller_portal_backend/internal/catalog"

// Speed is the seller's desired timeline.
type Speed int

const (
	// SpeedVeryFast is closing within roughly two weeks.
	SpeedVeryFast Speed = iota
	// SpeedFast is closing within about a month.
	SpeedFast
	// SpeedQuick is closing within two to three months.
	SpeedQuick
	// SpeedStandard is a typical three-to-six month sale.
	SpeedStandard
	// SpeedNoHurry means timing is flexible.
	SpeedNoHurry
)

// IsFastTrack reports whether the timeline rules out slower listing paths.
func (s Speed) IsFastTrack() bool {
	return s == SpeedVeryFast || s == SpeedFast
}

// Updates is the seller's assessment of the home's condition and finishes.
type Updates int

const (
	// UpdatesTopOfMarket means fully renovated, show-ready.
	UpdatesTopOfMarket Updates = iota
	// UpdatesSemiRecent means updated within the last several years.
	UpdatesSemiRecent
	// UpdatesNiceNotUpdated means well kept but original finishes.
	UpdatesNiceNotUpdated
	// UpdatesNotUpdatedWear means dated with visible wear.
	UpdatesNotUpdatedWear
	// UpdatesDatedFullCosmetic means a full cosmetic refresh is needed.
	UpdatesDatedFullCosmetic
)

// Repair is a known repair category.
type Repair int

const (
	// RepairStructural covers foundation, roof frame and similar issues.
	RepairStructural Repair = iota
	// RepairBigTicket covers HVAC, roof covering, sewer and similar systems.
	RepairBigTicket
	// RepairNonLoanable covers issues that block conventional financing.
	RepairNonLoanable
	// RepairMinor covers small punch-list items.
	RepairMinor

	numRepairs
)

// RepairSet is a set of repair categories.
type RepairSet uint8

// NewRepairSet builds a set from the given repairs.
func NewRepairSet(repairs ...Repair) RepairSet {
	var set RepairSet
	for _, r := range repairs {
		set |= 1 << uint(r)
	}
	return set
}

// Has reports whether the repair is in the set.
func (s RepairSet) Has(r Repair) bool {
	return s&(1<<uint(r)) != 0
}

// Empty reports whether no repairs were selected.
func (s RepairSet) Empty() bool {
	return s == 0
}

// HasBlocking reports whether the set contains a repair severe enough to
// rule out open-market listing paths.
func (s RepairSet) HasBlocking() bool {
	return s.Has(RepairStructural) || s.Has(RepairBigTicket) || s.Has(RepairNonLoanable)
}

// Avoidance is a sale aspect the seller wants to avoid.
type Avoidance int

const (
	// AvoidShowings means no open houses or walk-throughs.
	AvoidShowings Avoidance = iota
	// AvoidNegotiations means no back-and-forth over price and terms.
	AvoidNegotiations
	// AvoidExcessiveTime means no drawn-out sale process.
	AvoidExcessiveTime

	numAvoidances
)

// AvoidSet is a set of aspects the seller wants to avoid.
type AvoidSet uint8

// NewAvoidSet builds a set from the given avoidances.
func NewAvoidSet(items ...Avoidance) AvoidSet {
	var set AvoidSet
	for _, a := range items {
		set |= 1 << uint(a)
	}
	return set
}

// Has reports whether the avoidance is in the set.
func (s AvoidSet) Has(a Avoidance) bool {
	return s&(1<<uint(a)) != 0
}

// Empty reports whether the seller is open to everything.
func (s AvoidSet) Empty() bool {
	return s == 0
}

// Ranks is a complete ranking of the five seller priorities. The value at
// index p is the 1-based rank of priority p; every priority always carries
// a rank between 1 and 5.
type Ranks [catalog.NumPriorities]int

// Rank returns the 1-based rank of the priority.
func (r Ranks) Rank(p catalog.Priority) int {
	return r[p]
}

// TopTwo reports whether the priority is ranked first or second.
func (r Ranks) TopTwo(p catalog.Priority) bool {
	return r[p] <= 2
}

// Weight converts the priority's rank into its scoring weight. The curve is
// deliberately steep: only the top two ranks carry real influence.
func (r Ranks) Weight(p catalog.Priority) int {
	switch r[p] {
	case 1:
		return 10
	case 2:
		return 6
	case 3:
		return 1
	default:
		return 0
	}
}

// Answers is a fully normalized questionnaire submission. Every field has a
// defined value: normalization fills defaults for anything missing, so the
// engine never branches on absence.
type Answers struct {
	Speed      Speed
	Updates    Updates
	Repairs    RepairSet
	Avoid      AvoidSet
	Priorities Ranks
}
