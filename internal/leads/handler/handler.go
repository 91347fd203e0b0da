// Package handler exposes the leads HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"seller_portal_backend/internal/leads/repository"
	"seller_portal_backend/internal/leads/service"
	"seller_portal_backend/internal/leads/transport"
	"seller_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles lead requests.
type Handler struct {
	svc *service.Service
}

// New creates a leads handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /api/v1/leads (public intake).
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), service.CreateLeadInput{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		PropertyAddress:   req.PropertyAddress,
		Notes:             req.Notes,
		RecommendedOption: req.RecommendedOption,
		QuizAnswers:       req.QuizAnswers,
		Source:            req.Source,
		LandingURL:        req.LandingURL,
		UTMSource:         req.UTMSource,
		UTMMedium:         req.UTMMedium,
		UTMCampaign:       req.UTMCampaign,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, toLeadResponse(lead))
}

// Get handles GET /api/v1/admin/leads/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toLeadResponse(lead))
}

// List handles GET /api/v1/admin/leads.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	leads, err := h.svc.List(c.Request.Context(), repository.ListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ListLeadsResponse{Leads: make([]transport.LeadResponse, 0, len(leads))}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, toLeadResponse(lead))
	}
	httpkit.OK(c, resp)
}

func toLeadResponse(lead *repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                lead.ID.String(),
		FirstName:         lead.FirstName,
		LastName:          lead.LastName,
		Email:             lead.Email,
		Phone:             lead.Phone,
		PropertyAddress:   lead.PropertyAddress,
		RecommendedOption: lead.RecommendedOption,
		QuizAnswers:       lead.QuizAnswers,
		Notes:             lead.Notes,
		Status:            lead.Status,
		Source:            lead.Source,
		LandingURL:        lead.LandingURL,
		UTMSource:         lead.UTMSource,
		UTMMedium:         lead.UTMMedium,
		UTMCampaign:       lead.UTMCampaign,
		CreatedAt:         lead.CreatedAt,
		UpdatedAt:         lead.UpdatedAt,
	}
}
