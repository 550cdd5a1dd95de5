package sale

import (
	"context"
	"time"
)

// SaleRepository stores sales. Every lookup is scoped to the owning employee.
type SaleRepository interface {
	Create(ctx context.Context, sale Sale) (Sale, error)

	// GetByID returns ErrSaleNotFound when the sale does not belong to employeeID.
	GetByID(ctx context.Context, id string, employeeID string) (Sale, error)

	// GetForUpdate is GetByID that also locks the row inside a transaction.
	GetForUpdate(ctx context.Context, id string, employeeID string) (Sale, error)

	// Update writes every mutable field of sale, matching on id, employee and entry date.
	Update(ctx context.Context, sale Sale) (Sale, error)

	// Delete removes the sale filed under entryDate and returns the deleted row.
	Delete(ctx context.Context, id string, employeeID string, entryDate time.Time) (Sale, error)

	// ListByEmployee orders by commission, highest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Sale, error)

	// ListByEmployeeAndDate orders by creation time, newest first.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Sale, error)

	// AggregateClosed counts and sums the closed sales of one bucket in a single statement.
	AggregateClosed(ctx context.Context, employeeID string, date time.Time) (Aggregate, error)
}
