package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues SIFEN submissions for
// facturas stuck in estado='error' with a next_retry_at in the past. The
// facturación worker owns the retry bookkeeping; this cron only feeds jobs
// back when they come due, and backs off entirely while the circuit breaker
// is open.

import (
	"context"
	"time"

	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/infra"
	"github.com/VictorCubas/GROUP-TOURS-APP-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	FacturacionRepo repository.FacturacionRepository
	SIFEN           *infra.SIFENClient
	Dispatcher      *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues due invoices. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// Don't hammer a downed authority
	if cfg.SIFEN.Estado() == "open" {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	facturas, err := cfg.FacturacionRepo.ListFacturasParaReintento(ctx, time.Now(), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(facturas) == 0 {
		return
	}

	log.Info().Int("count", len(facturas)).Msg("retry_cron: re-enqueuing due facturas")
	for i := range facturas {
		job := FacturacionJobPayload{Tipo: "factura", ID: facturas[i].ID.String()}
		if err := cfg.Dispatcher.EnqueueFacturacion(ctx, job); err != nil {
			log.Error().Err(err).Str("factura_id", job.ID).Msg("retry_cron: enqueue failed")
		}
	}
}
