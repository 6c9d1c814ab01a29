// Package deals provides the deal pipeline bounded context: the stage state
// machine, financial derivation, transactional close/reopen cascades, and
// the kanban aggregation.
package deals

import (
	"autocrm_backend/internal/deals/handler"
	"autocrm_backend/internal/deals/ports"
	"autocrm_backend/internal/deals/repository"
	"autocrm_backend/internal/deals/service"
	"autocrm_backend/internal/events"
	apphttp "autocrm_backend/internal/http"
	"autocrm_backend/internal/scheduler"
	"autocrm_backend/platform/logger"
	"autocrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the deals bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the deals module with all its dependencies.
// The gateways come from internal/adapters; sched may be nil when no task
// queue is configured.
func NewModule(
	pool *pgxpool.Pool,
	leads ports.LeadGateway,
	vehicles ports.VehicleGateway,
	agents ports.AgentProvider,
	bus events.Bus,
	sched scheduler.FollowUpScheduler,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, vehicles, agents, bus, sched, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "deals"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts deal pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/deals")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.GET("/kanban", m.handler.Kanban)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id", m.handler.Update)
	group.POST("/:id/stage", m.handler.UpdateStage)
	group.POST("/:id/close", m.handler.Close)
	group.POST("/:id/reopen", m.handler.Reopen)
	group.POST("/:id/reassign", m.handler.Reassign)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
