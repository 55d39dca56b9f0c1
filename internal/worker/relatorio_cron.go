package worker

// relatorio_cron.go
// Background goroutine that enqueues the daily report job once per
// business day at the configured hour. A Redis SETNX key scoped to the
// calendar date guarantees at-most-once enqueueing even with multiple
// server instances running.

import (
	"context"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cronTickInterval = time.Minute
	cronDedupPrefix  = "relatorio:enviado:"
	cronDedupTTL     = 36 * time.Hour
)

// RelatorioCronConfig holds the dependencies of the report scheduler.
type RelatorioCronConfig struct {
	RDB        *redis.Client
	Dispatcher *Dispatcher
	// Hora is the local hour (0-23) at which the report goes out.
	Hora int
}

// StartRelatorioCron launches the scheduling goroutine. It respects the
// context for graceful shutdown.
func StartRelatorioCron(ctx context.Context, cfg RelatorioCronConfig) {
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Int("hora", cfg.Hora).Msg("relatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("relatorio_cron: shutting down")
				return
			case <-ticker.C:
				tickRelatorio(ctx, cfg, time.Now())
			}
		}
	}()
}

func tickRelatorio(ctx context.Context, cfg RelatorioCronConfig, agora time.Time) {
	if agora.Hour() != cfg.Hora {
		return
	}
	if !analytics.DiaUtil(agora) {
		return
	}

	dedupKey := cronDedupPrefix + agora.Format("2006-01-02")
	ok, err := cfg.RDB.SetNX(ctx, dedupKey, 1, cronDedupTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("relatorio_cron: dedup check failed")
		return
	}
	if !ok {
		return // already enqueued today
	}

	if err := cfg.Dispatcher.EnqueueRelatorio(ctx, RelatorioJobPayload{Origem: "cron"}); err != nil {
		log.Error().Err(err).Msg("relatorio_cron: enqueue failed")
		// Release the dedup key so the next tick can retry
		cfg.RDB.Del(ctx, dedupKey)
		return
	}
	log.Info().Str("data", agora.Format("2006-01-02")).Msg("relatorio_cron: daily report enqueued")
}
