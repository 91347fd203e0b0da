// Package handler exposes the recommendation HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"seller_portal_backend/internal/catalog"
	"seller_portal_backend/internal/recommend/engine"
	"seller_portal_backend/internal/recommend/transport"
	"seller_portal_backend/platform/httpkit"
	"seller_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler handles recommendation requests.
type Handler struct {
	engine *engine.Engine
	log    *logger.Logger
}

// New creates a recommendation handler.
func New(eng *engine.Engine, log *logger.Logger) *Handler {
	return &Handler{engine: eng, log: log}
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(c *gin.Context) {
	var req transport.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	answers := engine.Normalize(engine.QuizAnswers{
		Timeline:   req.Timeline,
		Updates:    req.Updates,
		Repairs:    req.Repairs,
		Avoid:      req.Avoid,
		Priorities: req.Priorities,
	})
	result := h.engine.Recommend(answers)

	resp := transport.RecommendationResponse{
		Best:      h.optionView(result.Best),
		Secondary: make([]transport.OptionView, 0, len(result.Secondary)),
	}
	for _, option := range result.Secondary {
		resp.Secondary = append(resp.Secondary, h.optionView(option))
	}

	if debug, _ := strconv.ParseBool(c.Query("debug")); debug {
		resp.Debug = debugView(result)
	}

	httpkit.OK(c, resp)
}

// ListOptions handles GET /api/v1/options.
func (h *Handler) ListOptions(c *gin.Context) {
	resp := transport.OptionsResponse{
		Options: make([]transport.CatalogOptionView, 0, catalog.NumOptions),
	}
	for _, option := range catalog.AllOptions() {
		resp.Options = append(resp.Options, transport.CatalogOptionView{
			OptionView:    h.optionView(option),
			SecondaryOnly: option.SecondaryOnly(),
		})
	}
	httpkit.OK(c, resp)
}

func (h *Handler) optionView(option catalog.Option) transport.OptionView {
	entry := h.engine.Registry().Entry(option)
	return transport.OptionView{
		Key:          entry.Key,
		Title:        entry.Title,
		Subtitle:     entry.Subtitle,
		Bullets:      entry.Bullets,
		Badge:        entry.Badge,
		LearnMoreURL: entry.LearnMoreURL,
	}
}

func debugView(result engine.Result) *transport.DebugView {
	view := &transport.DebugView{
		Scores:   make(map[string]int, len(result.Scores)),
		Excluded: make([]string, 0, len(result.Excluded)),
	}
	for option, score := range result.Scores {
		view.Scores[option.Key()] = score
	}
	for _, option := range result.Excluded {
		view.Excluded = append(view.Excluded, option.Key())
	}
	return view
}
