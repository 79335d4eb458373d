// Command lead-rescore rescores stored buyers in bulk. It is meant to be
// run after a rule profile change so every lead carries a current score.
package main

import (
	"context"
	"flag"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"buyer_triage_backend/internal/buyers"
	"buyer_triage_backend/platform/config"
	"buyer_triage_backend/platform/db"
	"buyer_triage_backend/platform/logger"
	"buyer_triage_backend/platform/validator"
)

func main() {
	profile := flag.String("profile", "", "scoring profile to apply (defaults to SCORING_PROFILE)")
	maxAge := flag.Duration("max-age", 0, "only rescore buyers whose latest score is older than this (0 = all)")
	batchSize := flag.Int("batch", 200, "buyers per batch")
	workers := flag.Int("workers", 8, "concurrent rescore workers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting bulk rescore", "profile", *profile, "batch", *batchSize, "workers", *workers)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	// No event bus or queue: this tool scores and persists directly.
	buyersModule, err := buyers.NewModule(ctx, pool, nil, nil, validator.New(), cfg, log)
	if err != nil {
		log.Error("failed to initialize buyers module", "error", err)
		panic("failed to initialize buyers module: " + err.Error())
	}
	svc := buyersModule.Service()
	repo := buyersModule.Repository()

	cutoff := time.Now().UTC()
	if *maxAge > 0 {
		cutoff = cutoff.Add(-*maxAge)
	}

	var total int
	var failed atomic.Int64
	for {
		ids, err := repo.ListStale(ctx, cutoff, *batchSize)
		if err != nil {
			log.Error("failed to list buyers", "error", err)
			return
		}
		if len(ids) == 0 {
			break
		}

		failedBefore := failed.Load()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(*workers)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				if _, err := svc.RescoreByID(gctx, id, *profile); err != nil {
					log.Error("rescore failed", "buyer_id", id.String(), "error", err)
					failed.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			log.Error("batch aborted", "error", err)
			return
		}

		total += len(ids)
		log.Info("batch complete", "processed", total, "failed", failed.Load())

		// A fully failed batch would repeat forever: the same buyers stay stale.
		if failed.Load()-failedBefore == int64(len(ids)) {
			log.Error("entire batch failed, stopping")
			break
		}
		if len(ids) < *batchSize {
			break
		}
	}

	log.Info("bulk rescore complete", "processed", total, "failed", failed.Load())
}
