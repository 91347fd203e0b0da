// Package leads provides the lead management bounded context module.
package leads

import (
	apphttp "seller_portal_backend/internal/http"
	"seller_portal_backend/internal/leads/handler"
	"seller_portal_backend/internal/leads/repository"
	"seller_portal_backend/internal/leads/service"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates the leads module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)

	return &Module{
		handler: handler.New(svc),
		Service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the public intake route and the admin routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/leads", ctx.IntakeRateLimiter.RateLimit(), m.handler.Create)

	admin := ctx.Admin.Group("/leads")
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
