package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shimotmr/Pudu-cases/internal/cache"
	"github.com/shimotmr/Pudu-cases/internal/cases"
)

// CatalogWarmer periodically re-serializes the full collection into the
// cache so the get action keeps hitting a warm snapshot between
// mutations. Runs are skipped while a previous one is still going.
type CatalogWarmer struct {
	service *cases.Service
	store   cache.Cache
	ttl     time.Duration
	log     *slog.Logger
	cron    *cron.Cron
}

func NewCatalogWarmer(service *cases.Service, store cache.Cache, ttl time.Duration, log *slog.Logger) *CatalogWarmer {
	return &CatalogWarmer{
		service: service,
		store:   store,
		ttl:     ttl,
		log:     log,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (w *CatalogWarmer) Start(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.runOnce); err != nil {
		return err
	}
	w.cron.Start()
	w.log.Info("catalog warmer started", slog.String("schedule", spec))
	return nil
}

func (w *CatalogWarmer) Stop() {
	w.cron.Stop()
}

func (w *CatalogWarmer) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	items, err := w.service.List(ctx)
	if err != nil {
		w.log.Warn("catalog warm: list failed", slog.String("error", err.Error()))
		return
	}

	payload, err := json.Marshal(items)
	if err != nil {
		w.log.Warn("catalog warm: marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := w.store.Set(ctx, cache.CatalogKey, payload, w.ttl); err != nil {
		w.log.Warn("catalog warm: cache set failed", slog.String("error", err.Error()))
		return
	}

	w.log.Info("catalog warmed", slog.Int("count", len(items)))
}
