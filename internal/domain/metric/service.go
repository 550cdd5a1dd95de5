package metric

import (
	"context"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
)

// MetricService is the Metric Recomputation Engine. Each call reads the
// closed sales of one bucket and writes sales-per-hour and commission onto
// that bucket's daily log, holding the log's row lock throughout.
type MetricService interface {
	// RecomputeLive is used right after a closed sale is added during the
	// employee's current shift. The divisor is the clamped time since login.
	RecomputeLive(ctx context.Context, employeeID string, day time.Time, timezone string) (shift.Metrics, error)

	// RecomputeHistorical divides by the bucket's configured shift length.
	// Used after edits, deletes, shift changes and repair passes.
	RecomputeHistorical(ctx context.Context, employeeID string, day time.Time) (shift.Metrics, error)

	// Repair recomputes every finished bucket from since onwards. Buckets
	// that are still the owner's local today are skipped.
	Repair(ctx context.Context, since time.Time) (RepairReport, error)
}

type RepairReport struct {
	Scanned     int `json:"scanned"`
	Recomputed  int `json:"recomputed"`
	SkippedLive int `json:"skipped_live"`
	Failed      int `json:"failed"`
}
