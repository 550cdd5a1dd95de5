package sale

import "context"

// SaleService is the Sale Ledger. Mutations that change the closed set of a
// bucket trigger metric recomputation for it; a recomputation failure is
// reported on the response and never fails the mutation.
type SaleService interface {
	Create(ctx context.Context, req CreateSaleRequest) (MutationResponse, error)
	Edit(ctx context.Context, req EditSaleRequest) (MutationResponse, error)
	Delete(ctx context.Context, req DeleteSaleRequest) (MutationResponse, error)

	Get(ctx context.Context, id string, employeeID string) (SaleResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]SaleResponse, error)
	ListByDate(ctx context.Context, employeeID string, date string) ([]SaleResponse, error)
}
