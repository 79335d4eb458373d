package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"buyer_triage_backend/internal/buyers/repository"
	"buyer_triage_backend/internal/buyers/service"
	"buyer_triage_backend/platform/apperr"
	"buyer_triage_backend/platform/config"
	"buyer_triage_backend/platform/logger"
)

// defaultSweepMaxAgeHours rescore's anything older than a week when the
// sweep payload does not say otherwise.
const defaultSweepMaxAgeHours = 168

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	svc    *service.Service
	repo   *repository.Repository
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, svc *service.Service, repo *repository.Repository, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		svc:    svc,
		repo:   repo,
		log:    log,
	}

	mux.HandleFunc(TaskBuyerRescore, w.handleBuyerRescore)
	mux.HandleFunc(TaskStaleScoreSweep, w.handleStaleScoreSweep)

	return w, nil
}

func (w *Worker) handleBuyerRescore(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBuyerRescorePayload(task)
	if err != nil {
		return err
	}

	buyerID, err := uuid.Parse(payload.BuyerID)
	if err != nil {
		return err
	}

	_, err = w.svc.RescoreByID(ctx, buyerID, payload.Profile)
	if err != nil {
		// The buyer may have been deleted between enqueue and processing.
		var domainErr *apperr.Error
		if errors.As(err, &domainErr) && domainErr.Kind == apperr.KindNotFound {
			w.log.Info("skipping rescore for deleted buyer", "buyer_id", payload.BuyerID)
			return nil
		}
		return err
	}
	return nil
}

func (w *Worker) handleStaleScoreSweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseStaleScoreSweepPayload(task)
	if err != nil {
		return err
	}

	maxAge := payload.MaxAgeHours
	if maxAge <= 0 {
		maxAge = defaultSweepMaxAgeHours
	}

	cutoff := time.Now().UTC().Add(-time.Duration(maxAge) * time.Hour)
	ids, err := w.repo.ListStale(ctx, cutoff, payload.Limit)
	if err != nil {
		return err
	}

	var failed int
	for _, id := range ids {
		if _, err := w.svc.RescoreByID(ctx, id, ""); err != nil {
			failed++
			w.log.Error("sweep rescore failed", "buyer_id", id.String(), "error", err)
		}
	}

	w.log.Info("stale score sweep complete", "candidates", len(ids), "failed", failed)
	if failed > 0 && failed == len(ids) {
		return fmt.Errorf("sweep failed for all %d buyers", failed)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
