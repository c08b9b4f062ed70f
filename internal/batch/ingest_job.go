package batch

import (
	"context"
	"credit-engine/internal/ingest"
	"fmt"
	"log/slog"
	"time"
)

type Ingester interface {
	Run(ctx context.Context, dataset ingest.Dataset) ([]ingest.Report, error)
}

// IngestJob reloads the workbooks. Customers are keyed by their file id and
// loans by customer and file loan id, so re-running over unchanged files
// only adds new rows.
type IngestJob struct {
	ingester Ingester
	dataset  ingest.Dataset
	logger   *slog.Logger
}

func NewIngestJob(ingester Ingester, dataset ingest.Dataset, logger *slog.Logger) *IngestJob {
	if ingester == nil || logger == nil {
		panic("IngestJob dependencies cannot be nil")
	}
	return &IngestJob{ingester: ingester, dataset: dataset, logger: logger.With("job", "Ingest")}
}

func (j *IngestJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting data ingestion job.", "dataset", j.dataset)

	reports, err := j.ingester.Run(ctx, j.dataset)
	for _, r := range reports {
		j.logger.InfoContext(ctx, "Dataset ingested.", "dataset", r.Dataset, "rows", r.Rows, "inserted", r.Inserted, "skipped", r.Skipped, "failed", r.Failed)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Data ingestion job failed.", slog.Any("error", err), slog.Duration("duration", time.Since(startTime)))
		return fmt.Errorf("ingestion of %s failed: %w", j.dataset, err)
	}

	j.logger.InfoContext(ctx, "Data ingestion job finished.", slog.Duration("duration", time.Since(startTime)))
	return nil
}
