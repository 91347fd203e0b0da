// Package transport defines the wire DTOs for the recommendation endpoints.
package transport

// RecommendationRequest is a raw questionnaire submission. Every field is
// optional: the engine fills defaults for anything missing or unrecognized.
type RecommendationRequest struct {
	Timeline   string   `json:"timeline" binding:"omitempty,max=64"`
	Updates    string   `json:"updates" binding:"omitempty,max=64"`
	Repairs    []string `json:"repairs" binding:"omitempty,max=16,dive,max=64"`
	Avoid      []string `json:"avoid" binding:"omitempty,max=16,dive,max=64"`
	Priorities []string `json:"priorities" binding:"omitempty,max=16,dive,max=64"`
}

// OptionView is the client-facing representation of a selling option.
type OptionView struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Bullets      []string `json:"bullets"`
	Badge        string   `json:"badge,omitempty"`
	LearnMoreURL string   `json:"learnMoreUrl"`
}

// RecommendationResponse is the result of a questionnaire submission.
type RecommendationResponse struct {
	Best      OptionView   `json:"best"`
	Secondary []OptionView `json:"secondary"`
	Debug     *DebugView   `json:"debug,omitempty"`
}

// DebugView exposes the scoring detail behind a recommendation. It is only
// included when explicitly requested.
type DebugView struct {
	Scores   map[string]int `json:"scores"`
	Excluded []string       `json:"excluded"`
}

// OptionsResponse lists the full option catalog.
type OptionsResponse struct {
	Options []CatalogOptionView `json:"options"`
}

// CatalogOptionView is an OptionView plus catalog-level flags.
type CatalogOptionView struct {
	OptionView
	SecondaryOnly bool `json:"secondaryOnly"`
}
