package batch

import (
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

const defaultScoreWorkers = 4

type CustomerScore struct {
	CustomerID int64
	Name       string
	Score      int
	Band       credit.Band
}

type ScoreSummary struct {
	Scores   []CustomerScore
	ByBand   map[credit.Band]int
	Errors   int
	Duration time.Duration
}

// RecalculateScoresJob scores every customer against today's loan snapshot.
// The scores themselves are not stored; the credit service exports them as a
// histogram and the summary is returned to the caller.
type RecalculateScoresJob struct {
	customerService customer.CustomerService
	creditService   credit.Service
	workers         int
	logger          *slog.Logger
}

func NewRecalculateScoresJob(customerSvc customer.CustomerService, creditSvc credit.Service, workers int, logger *slog.Logger) *RecalculateScoresJob {
	if customerSvc == nil || creditSvc == nil || logger == nil {
		panic("RecalculateScoresJob dependencies cannot be nil")
	}
	if workers <= 0 {
		workers = defaultScoreWorkers
	}
	return &RecalculateScoresJob{
		customerService: customerSvc,
		creditService:   creditSvc,
		workers:         workers,
		logger:          logger.With("job", "RecalculateScores"),
	}
}

func (j *RecalculateScoresJob) Run(ctx context.Context) (*ScoreSummary, error) {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting credit score recalculation job.")

	customers, err := j.customerService.ListCustomers(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return nil, fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched customers.", slog.Int("count", len(customers)))

	summary := &ScoreSummary{
		Scores: make([]CustomerScore, 0, len(customers)),
		ByBand: make(map[credit.Band]int),
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, j.workers)
	)

	for _, cust := range customers {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(c *customer.Customer) {
			defer wg.Done()
			defer func() { <-sem }()

			logCtx := j.logger.With(slog.Int64("customerID", c.CustomerID))
			report, scoreErr := j.creditService.CreditScore(ctx, c.CustomerID)

			mu.Lock()
			defer mu.Unlock()
			if scoreErr != nil {
				if errors.Is(scoreErr, apperrors.ErrNotFound) {
					logCtx.WarnContext(ctx, "Customer disappeared during scoring", slog.Any("error", scoreErr))
					return
				}
				logCtx.ErrorContext(ctx, "Failed to score customer", slog.Any("error", scoreErr))
				summary.Errors++
				return
			}

			score := report.Breakdown.Score
			band := credit.BandFor(score)
			summary.Scores = append(summary.Scores, CustomerScore{CustomerID: c.CustomerID, Name: c.Name(), Score: score, Band: band})
			summary.ByBand[band]++
		}(cust)
	}

	wg.Wait()
	sort.Slice(summary.Scores, func(a, b int) bool { return summary.Scores[a].CustomerID < summary.Scores[b].CustomerID })
	summary.Duration = time.Since(startTime)

	summaryLog := j.logger.With(
		slog.Duration("duration", summary.Duration),
		slog.Int("customers", len(customers)),
		slog.Int("scored", len(summary.Scores)),
		slog.Int("good", summary.ByBand[credit.BandGood]),
		slog.Int("fair", summary.ByBand[credit.BandFair]),
		slog.Int("poor", summary.ByBand[credit.BandPoor]),
		slog.Int("ineligible", summary.ByBand[credit.BandIneligible]),
		slog.Int("errors_encountered", summary.Errors),
	)

	if err := ctx.Err(); err != nil {
		summaryLog.WarnContext(ctx, "Credit score recalculation job interrupted.", slog.Any("error", err))
		return summary, err
	}
	if summary.Errors > 0 {
		summaryLog.WarnContext(ctx, "Credit score recalculation job finished with errors.")
		return summary, fmt.Errorf("job completed with %d errors", summary.Errors)
	}
	summaryLog.InfoContext(ctx, "Credit score recalculation job finished successfully.")
	return summary, nil
}
