// Package catalog defines the fixed set of selling options the brokerage
// offers, together with their display metadata and the canonical ordering
// used for deterministic tie-breaking.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option identifies one of the seven selling options.
type Option int

const (
	// OptionCash is a direct cash purchase, close in days, sold as-is.
	OptionCash Option = iota
	// OptionTraditional is a full-service agent listing.
	OptionTraditional
	// OptionDirectList is a flat-fee MLS listing without full agent service.
	OptionDirectList
	// OptionEquityBridge advances equity so the seller can move before closing.
	OptionEquityBridge
	// OptionPriceLaunch renovates the home first, then lists at top of market.
	OptionPriceLaunch
	// OptionUplist is a concierge listing-management service (secondary-only).
	OptionUplist
	// OptionSellerFinance is owner financing at a premium price (secondary-only).
	OptionSellerFinance

	numOptions
)

// NumOptions is the size of the option catalog.
const NumOptions = int(numOptions)

// Key returns the stable wire identifier for the option.
func (o Option) Key() string {
	switch o {
	case OptionCash:
		return "cash"
	case OptionTraditional:
		return "traditional"
	case OptionDirectList:
		return "direct_list"
	case OptionEquityBridge:
		return "equity_bridge"
	case OptionPriceLaunch:
		return "price_launch"
	case OptionUplist:
		return "uplist"
	case OptionSellerFinance:
		return "seller_finance"
	}
	return fmt.Sprintf("option(%d)", int(o))
}

// ParseOption resolves a wire identifier to an Option.
func ParseOption(key string) (Option, bool) {
	for _, o := range AllOptions() {
		if o.Key() == key {
			return o, true
		}
	}
	return 0, false
}

// AllOptions returns every option in canonical simplicity order: the position
// doubles as the tie-break rank (earlier options win ties).
func AllOptions() []Option {
	options := make([]Option, 0, NumOptions)
	for o := Option(0); o < numOptions; o++ {
		options = append(options, o)
	}
	return options
}

// SecondaryOnly reports whether the option may never be the single best
// recommendation.
func (o Option) SecondaryOnly() bool {
	return o == OptionUplist || o == OptionSellerFinance
}

// AlwaysLastSecondary reports whether the option, when recommended as an
// alternative, must be listed after every other alternative.
func (o Option) AlwaysLastSecondary() bool {
	return o == OptionSellerFinance
}

// Priority identifies one of the five seller priorities ranked in the
// questionnaire. The declaration order is the canonical enumeration order
// used to complete partial rankings.
type Priority int

const (
	// PriorityMaximizePrice is getting the highest possible sale price.
	PriorityMaximizePrice Priority = iota
	// PrioritySellQuickly is closing as soon as possible.
	PrioritySellQuickly
	// PriorityAvoidRepairs is not paying for or managing repairs.
	PriorityAvoidRepairs
	// PriorityAvoidHassle is minimizing showings, paperwork and negotiation.
	PriorityAvoidHassle
	// PriorityFinancialFreshStart is walking away with cash in hand.
	PriorityFinancialFreshStart

	numPriorities
)

// NumPriorities is the number of ranked seller priorities.
const NumPriorities = int(numPriorities)

// Key returns the stable wire identifier for the priority.
func (p Priority) Key() string {
	switch p {
	case PriorityMaximizePrice:
		return "maximize_price"
	case PrioritySellQuickly:
		return "sell_quickly"
	case PriorityAvoidRepairs:
		return "avoid_repairs"
	case PriorityAvoidHassle:
		return "avoid_hassle"
	case PriorityFinancialFreshStart:
		return "financial_fresh_start"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// AllPriorities returns every priority in canonical enumeration order.
func AllPriorities() []Priority {
	priorities := make([]Priority, 0, NumPriorities)
	for p := Priority(0); p < numPriorities; p++ {
		priorities = append(priorities, p)
	}
	return priorities
}

// Entry holds the display metadata for one selling option.
type Entry struct {
	Key          string   `yaml:"key" json:"key"`
	Title        string   `yaml:"title" json:"title"`
	Subtitle     string   `yaml:"subtitle" json:"subtitle"`
	Bullets      []string `yaml:"bullets" json:"bullets"`
	Badge        string   `yaml:"badge,omitempty" json:"badge,omitempty"`
	LearnMoreURL string   `yaml:"learn_more" json:"learnMoreUrl"`
}

// Registry is the immutable option catalog. It is constructed once at startup
// and injected into consumers; the recommendation engine holds no static state.
type Registry struct {
	entries [numOptions]Entry
}

//go:embed options.yaml
var optionsYAML []byte

type optionsFile struct {
	Options []Entry `yaml:"options"`
}

// Load parses the embedded option metadata and validates that every option
// in the catalog has exactly one entry.
func Load() (*Registry, error) {
	var file optionsFile
	if err := yaml.Unmarshal(optionsYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse option catalog: %w", err)
	}

	reg := &Registry{}
	seen := make(map[Option]bool, NumOptions)
	for _, entry := range file.Options {
		option, ok := ParseOption(entry.Key)
		if !ok {
			return nil, fmt.Errorf("unknown option key %q in catalog", entry.Key)
		}
		if seen[option] {
			return nil, fmt.Errorf("duplicate option key %q in catalog", entry.Key)
		}
		seen[option] = true
		reg.entries[option] = entry
	}

	for _, option := range AllOptions() {
		if !seen[option] {
			return nil, fmt.Errorf("option %q missing from catalog", option.Key())
		}
	}

	return reg, nil
}

// Entry returns the display metadata for the given option.
func (r *Registry) Entry(o Option) Entry {
	return r.entries[o]
}
