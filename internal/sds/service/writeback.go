package service

import (
	"context"
	"log/slog"
	"time"

	"hazcom/internal/sds/cache"
	"hazcom/internal/sds/metrics"
	"hazcom/internal/sds/models"
)

// insertTimeout bounds each write-back insert so a stuck store cannot wedge
// the worker.
const insertTimeout = 5 * time.Second

// WritebackWorker consumes resolved records from the queue and persists them
// into the document cache. Failures are logged only; by the time a record
// reaches the worker the caller already has its response.
type WritebackWorker struct {
	cache   cache.Store
	inbox   <-chan models.Record
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewWritebackWorker(store cache.Store, inbox <-chan models.Record, logger *slog.Logger, m *metrics.Metrics) *WritebackWorker {
	return &WritebackWorker{cache: store, inbox: inbox, logger: logger, metrics: m}
}

func (w *WritebackWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record := <-w.inbox:
			insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
			err := w.cache.Insert(insertCtx, record)
			cancel()
			if err != nil {
				w.metrics.IncrementWritebackFailures()
				w.logger.Warn("sds cache write-back failed",
					"product_name", record.ProductName,
					"error", err.Error(),
				)
			}
		}
	}
}
