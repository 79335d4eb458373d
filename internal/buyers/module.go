// Package buyers provides the buyer triage bounded context module.
package buyers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"buyer_triage_backend/internal/buyers/agent"
	"buyer_triage_backend/internal/buyers/handler"
	"buyer_triage_backend/internal/buyers/narrative"
	"buyer_triage_backend/internal/buyers/repository"
	"buyer_triage_backend/internal/buyers/service"
	"buyer_triage_backend/internal/events"
	apphttp "buyer_triage_backend/internal/http"
	"buyer_triage_backend/platform/config"
	"buyer_triage_backend/platform/logger"
	"buyer_triage_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the buyers module needs.
type ModuleConfig interface {
	config.AIConfig
	config.ScoringConfig
}

// Module is the buyers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the buyers module. When a Gemini API
// key is configured the summary provider is model-backed; otherwise the
// deterministic generator serves directly.
func NewModule(ctx context.Context, pool *pgxpool.Pool, bus events.Bus, enqueuer service.TaskEnqueuer, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)

	var provider narrative.SummaryProvider = narrative.NewGenerator()
	enhanced := false
	if cfg.IsSummaryEnhancementEnabled() {
		enhancer, err := agent.NewSummaryEnhancer(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel(), cfg.GetSummaryTimeout(), provider, log)
		if err != nil {
			return nil, err
		}
		provider = enhancer
		enhanced = true
	}

	svc := service.New(repo, bus, provider, enhanced, enqueuer, cfg.GetDefaultScoringProfile(), log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "buyers"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts buyer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/buyers")
	group.POST("", m.handler.Create)
	group.GET("", m.handler.List)
	group.POST("/score/preview", m.handler.PreviewScore)
	group.GET("/:id", m.handler.Get)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
	group.POST("/:id/rescore", m.handler.Rescore)
	group.GET("/:id/summary", m.handler.Summary)
}
