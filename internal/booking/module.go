// Package booking provides the consultation booking bounded context module.
package booking

import (
	"seller_portal_backend/internal/booking/calendar"
	"seller_portal_backend/internal/booking/handler"
	"seller_portal_backend/internal/booking/repository"
	"seller_portal_backend/internal/booking/service"
	apphttp "seller_portal_backend/internal/http"
	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the booking bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
	Writer  *service.Writer
}

// NewModule creates the booking module. tasks may be nil when no task backend
// is configured; recording then happens inline.
func NewModule(pool *pgxpool.Pool, leads service.LeadStore, tasks service.Tasks, bus events.Bus, cfg config.SchedulingConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	provider := calendar.NewClient(cfg, log)
	writer := service.NewWriter(leads, repo, log)
	svc := service.New(provider, leads, writer, tasks, bus, cfg, log)

	return &Module{
		handler: handler.New(svc, repo, log),
		Service: svc,
		Writer:  writer,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes mounts the public booking routes and the admin meeting routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/booking")
	group.GET("/event-types/:id", m.handler.EventType)
	group.GET("/availability", m.handler.Availability)
	group.POST("/validate", m.handler.Validate)

	ctx.V1.POST("/bookings", ctx.IntakeRateLimiter.RateLimit(), m.handler.Create)

	admin := ctx.Admin.Group("/meetings")
	admin.GET("", m.handler.ListMeetings)
	admin.GET("/:id", m.handler.GetMeeting)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
