// Package vehicles provides the inventory store the deal pipeline sells
// from. Sold and available flips triggered by closings run inside the deal
// transaction through the repository Tx methods.
package vehicles

import (
	apphttp "autocrm_backend/internal/http"
	"autocrm_backend/internal/vehicles/handler"
	"autocrm_backend/internal/vehicles/repository"
	"autocrm_backend/internal/vehicles/service"
	"autocrm_backend/platform/logger"
	"autocrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the vehicles module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    repository.Repository
}

// NewModule creates and initializes the vehicles module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vehicles"
}

// Repository exposes the vehicle store so the deals adapters can participate
// in deal transactions.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts vehicle routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/vehicles")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
