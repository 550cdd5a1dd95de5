package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
)

// MetricJobs re-derives cached daily-log metrics for recently finished days,
// catching buckets left stale by a failed post-mutation recomputation.
type MetricJobs struct {
	metricService metric.MetricService
	clock         clock.Clock
	lookbackDays  int
}

func NewMetricJobs(metricService metric.MetricService, clk clock.Clock, lookbackDays int) *MetricJobs {
	return &MetricJobs{
		metricService: metricService,
		clock:         clk,
		lookbackDays:  lookbackDays,
	}
}

func (j *MetricJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("repair_daily_log_metrics", interval, j.RepairMetrics)
}

// RepairMetrics recomputes every bucket whose date falls within the lookback
// window. Failures on single buckets are counted, not returned.
func (j *MetricJobs) RepairMetrics(ctx context.Context) error {
	today, err := j.clock.LocalToday("UTC")
	if err != nil {
		return err
	}
	// one extra day covers employees west of UTC
	since := today.AddDate(0, 0, -(j.lookbackDays + 1))

	report, err := j.metricService.Repair(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to repair metrics since %s: %w", clock.FormatDate(since), err)
	}

	slog.Info("Cron: daily log metrics repaired",
		"since", clock.FormatDate(since),
		"scanned", report.Scanned,
		"recomputed", report.Recomputed,
		"skipped_live", report.SkippedLive,
		"failed", report.Failed,
	)
	return nil
}
