// Package recommend provides the recommendation bounded context module.
package recommend

import (
	"seller_portal_backend/internal/catalog"
	apphttp "seller_portal_backend/internal/http"
	"seller_portal_backend/internal/recommend/engine"
	"seller_portal_backend/internal/recommend/handler"
	"seller_portal_backend/platform/logger"
)

// Module is the recommendation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	Engine  *engine.Engine
}

// NewModule creates the recommendation module bound to the option catalog.
func NewModule(registry *catalog.Registry, log *logger.Logger) *Module {
	eng := engine.New(registry)
	return &Module{
		handler: handler.New(eng, log),
		Engine:  eng,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "recommend"
}

// RegisterRoutes mounts the public recommendation endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/recommendations", m.handler.Recommend)
	ctx.V1.GET("/options", m.handler.ListOptions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
