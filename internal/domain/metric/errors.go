package metric

import (
	"fmt"
	"time"
)

// RecomputationWarning wraps a recomputation failure that followed a
// successful mutation. It is advisory: the cached metrics of the bucket are
// stale until the next successful recomputation.
type RecomputationWarning struct {
	EmployeeID string
	Day        time.Time
	Err        error
}

func (w *RecomputationWarning) Error() string {
	return fmt.Sprintf("metrics for %s may be out of date: %v", w.Day.Format("2006-01-02"), w.Err)
}

func (w *RecomputationWarning) Unwrap() error {
	return w.Err
}
