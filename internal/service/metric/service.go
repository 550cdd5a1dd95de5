package metric

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/metric"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/clock"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/database"
)

type MetricServiceImpl struct {
	tx database.Transactor
	shift.ShiftRepository
	sale.SaleRepository
	clock clock.Clock
}

// RecomputeLive implements metric.MetricService.
func (m *MetricServiceImpl) RecomputeLive(ctx context.Context, employeeID string, day time.Time, timezone string) (shift.Metrics, error) {
	return m.recompute(ctx, employeeID, day, func(entry shift.ShiftEntry, agg sale.Aggregate) (shift.Metrics, error) {
		now, err := m.clock.LocalNow(timezone)
		if err != nil {
			return shift.Metrics{}, err
		}
		return ComputeLive(agg, entry.State(), now), nil
	})
}

// RecomputeHistorical implements metric.MetricService.
func (m *MetricServiceImpl) RecomputeHistorical(ctx context.Context, employeeID string, day time.Time) (shift.Metrics, error) {
	return m.recompute(ctx, employeeID, day, func(entry shift.ShiftEntry, agg sale.Aggregate) (shift.Metrics, error) {
		return ComputeHistorical(agg, entry.ShiftDurationHours), nil
	})
}

// recompute locks the bucket's daily log, reads the closed-sale aggregate
// and writes the result back, all in one transaction. Concurrent
// recomputations of the same bucket queue on the row lock, so each one
// reads every sale committed before it acquired the lock.
func (m *MetricServiceImpl) recompute(
	ctx context.Context,
	employeeID string,
	day time.Time,
	calc func(shift.ShiftEntry, sale.Aggregate) (shift.Metrics, error),
) (shift.Metrics, error) {
	var result shift.Metrics
	err := m.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := m.ShiftRepository.GetForUpdate(txCtx, employeeID, day)
		if err != nil {
			return err
		}

		agg, err := m.SaleRepository.AggregateClosed(txCtx, employeeID, day)
		if err != nil {
			return fmt.Errorf("failed to aggregate closed sales: %w", err)
		}

		metrics, err := calc(entry, agg)
		if err != nil {
			return err
		}

		if err := m.ShiftRepository.UpdateMetrics(txCtx, employeeID, day, metrics); err != nil {
			return fmt.Errorf("failed to update daily log metrics: %w", err)
		}
		result = metrics
		return nil
	})
	if err != nil {
		return shift.Metrics{}, err
	}
	return result, nil
}

// Repair implements metric.MetricService.
func (m *MetricServiceImpl) Repair(ctx context.Context, since time.Time) (metric.RepairReport, error) {
	var report metric.RepairReport

	buckets, err := m.ShiftRepository.ListBucketsSince(ctx, since)
	if err != nil {
		return report, fmt.Errorf("failed to list daily logs: %w", err)
	}

	for _, b := range buckets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		today, err := m.clock.LocalToday(b.Timezone)
		if err != nil {
			slog.Warn("skipping daily log with invalid timezone",
				"employee_id", b.EmployeeID,
				"date", clock.FormatDate(b.Date),
				"timezone", b.Timezone,
			)
			report.Failed++
			continue
		}
		if !b.Date.Before(today) {
			report.SkippedLive++
			continue
		}

		if _, err := m.RecomputeHistorical(ctx, b.EmployeeID, b.Date); err != nil {
			slog.Error("failed to repair daily log metrics",
				"employee_id", b.EmployeeID,
				"date", clock.FormatDate(b.Date),
				"error", err,
			)
			report.Failed++
			continue
		}
		report.Recomputed++
	}

	return report, nil
}

func NewMetricService(
	tx database.Transactor,
	shiftRepo shift.ShiftRepository,
	saleRepo sale.SaleRepository,
	clk clock.Clock,
) metric.MetricService {
	return &MetricServiceImpl{
		tx:              tx,
		ShiftRepository: shiftRepo,
		SaleRepository:  saleRepo,
		clock:           clk,
	}
}
