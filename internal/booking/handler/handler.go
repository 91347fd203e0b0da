// Package handler exposes the booking HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"seller_portal_backend/internal/booking/flow"
	"seller_portal_backend/internal/booking/repository"
	"seller_portal_backend/internal/booking/service"
	"seller_portal_backend/internal/booking/transport"
	"seller_portal_backend/platform/httpkit"
	"seller_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles booking requests.
type Handler struct {
	svc  *service.Service
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a booking handler.
func New(svc *service.Service, repo *repository.Repository, log *logger.Logger) *Handler {
	return &Handler{svc: svc, repo: repo, log: log}
}

// EventType handles GET /api/v1/booking/event-types/:id.
func (h *Handler) EventType(c *gin.Context) {
	id := c.Param("id")
	if id == "default" {
		id = ""
	}

	eventType, err := h.svc.EventType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.EventTypeResponse{
		ID:              eventType.ID,
		Name:            eventType.Name,
		Description:     eventType.Description,
		DurationMinutes: eventType.DurationMinutes,
		LocationKind:    eventType.LocationKind,
	})
}

// Availability handles GET /api/v1/booking/availability.
func (h *Handler) Availability(c *gin.Context) {
	eventTypeID := c.Query("eventTypeId")

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid from timestamp", nil)
			return
		}
		from = parsed
	}

	slots, err := h.svc.LoadAvailability(c.Request.Context(), eventTypeID, from)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.AvailabilityResponse{
		EventTypeID: eventTypeID,
		Slots:       make([]time.Time, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, slot.Start)
	}
	httpkit.OK(c, resp)
}

// Validate handles POST /api/v1/booking/validate.
func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	valid, err := h.svc.ValidateSlot(c.Request.Context(), req.EventTypeID, req.Start)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ValidateSlotResponse{Valid: valid})
}

// Create handles POST /api/v1/bookings. The request is driven through the
// booking flow so the validate-confirm-book ordering is enforced in one place.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	session := flow.New()
	defer session.Close()

	if err := session.SelectDay(req.Start.Truncate(24 * time.Hour)); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "booking flow error", nil)
		return
	}
	if err := session.SelectSlot(req.Start); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "booking flow error", nil)
		return
	}

	valid, err := h.svc.ValidateSlot(c.Request.Context(), req.EventTypeID, req.Start)
	if err != nil {
		_ = session.ValidationFailed()
		_ = httpkit.HandleError(c, err)
		return
	}
	if !valid {
		_ = session.ValidationFailed()
		httpkit.Error(c, http.StatusConflict, "slot no longer available", nil)
		return
	}
	_ = session.ValidationSucceeded()
	_ = session.Confirm()

	result, err := h.svc.Book(c.Request.Context(), service.BookInput{
		EventTypeID:     req.EventTypeID,
		LeadID:          req.LeadID,
		Start:           req.Start,
		InviteeName:     req.InviteeName,
		InviteeEmail:    req.InviteeEmail,
		InviteePhone:    req.InviteePhone,
		InviteeTimezone: req.InviteeTimezone,
		Program:         req.Program,
		Notes:           req.Notes,
	})
	if err != nil {
		_ = session.BookingFailed(err)
		h.log.Warn("booking failed", "state", session.State().String(), "error", err)
		_ = httpkit.HandleError(c, err)
		return
	}
	_ = session.BookingSucceeded()

	httpkit.JSON(c, http.StatusCreated, transport.BookingResponse{
		MeetingID:       result.MeetingID.String(),
		ProviderEventID: result.Booking.EventID,
		Start:           result.Booking.Start,
		End:             result.Booking.End,
		JoinURL:         result.Booking.JoinURL,
		CancelURL:       result.Booking.CancelURL,
		RescheduleURL:   result.Booking.RescheduleURL,
	})
}

// ListMeetings handles GET /api/v1/admin/meetings.
func (h *Handler) ListMeetings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.ListFilter{Limit: limit, Offset: offset}
	if raw := c.Query("leadId"); raw != "" {
		leadID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
			return
		}
		filter.LeadID = &leadID
	}

	meetings, err := h.repo.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ListMeetingsResponse{Meetings: make([]transport.MeetingResponse, 0, len(meetings))}
	for _, meeting := range meetings {
		resp.Meetings = append(resp.Meetings, toMeetingResponse(meeting))
	}
	httpkit.OK(c, resp)
}

// GetMeeting handles GET /api/v1/admin/meetings/:id.
func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid meeting id", nil)
		return
	}

	meeting, err := h.repo.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toMeetingResponse(meeting))
}

func toMeetingResponse(meeting *repository.Meeting) transport.MeetingResponse {
	return transport.MeetingResponse{
		ID:              meeting.ID.String(),
		LeadID:          meeting.LeadID.String(),
		ProviderEventID: meeting.ProviderEventID,
		EventTypeID:     meeting.EventTypeID,
		Program:         meeting.Program,
		InviteeName:     meeting.InviteeName,
		InviteeEmail:    meeting.InviteeEmail,
		InviteePhone:    meeting.InviteePhone,
		InviteeTimezone: meeting.InviteeTimezone,
		Notes:           meeting.Notes,
		StartTime:       meeting.StartTime,
		EndTime:         meeting.EndTime,
		LocationKind:    meeting.LocationKind,
		LocationDetails: meeting.LocationDetails,
		JoinURL:         meeting.JoinURL,
		Status:          meeting.Status,
		CreatedAt:       meeting.CreatedAt,
	}
}
