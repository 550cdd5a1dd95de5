package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/shopspring/decimal"
)

type SaleStore struct {
	s *Store
}

var _ sale.SaleRepository = (*SaleStore)(nil)

func (r *SaleStore) Create(_ context.Context, newSale sale.Sale) (sale.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.saleWriteErr != nil {
		return sale.Sale{}, fmt.Errorf("%w: %v", sale.ErrSaleNotSaved, r.s.saleWriteErr)
	}
	if _, ok := r.s.employees[newSale.EmployeeID]; !ok {
		return sale.Sale{}, employee.ErrEmployeeNotFound
	}
	if _, ok := r.s.campaigns[newSale.CampaignID]; !ok {
		return sale.Sale{}, sale.ErrCampaignNotFound
	}

	now := r.s.now()
	newSale.ID = newID()
	newSale.CreatedAt = now
	newSale.UpdatedAt = now
	r.s.sales[newSale.ID] = newSale
	return newSale, nil
}

func (r *SaleStore) GetByID(_ context.Context, id string, employeeID string) (sale.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.sales[id]
	if !ok || s.EmployeeID != employeeID {
		return sale.Sale{}, sale.ErrSaleNotFound
	}
	return s, nil
}

func (r *SaleStore) GetForUpdate(ctx context.Context, id string, employeeID string) (sale.Sale, error) {
	return r.GetByID(ctx, id, employeeID)
}

func (r *SaleStore) Update(_ context.Context, updated sale.Sale) (sale.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.saleWriteErr != nil {
		return sale.Sale{}, fmt.Errorf("%w: %v", sale.ErrSaleNotEdited, r.s.saleWriteErr)
	}
	current, ok := r.s.sales[updated.ID]
	if !ok || current.EmployeeID != updated.EmployeeID || !current.EntryDate.Equal(updated.EntryDate) {
		return sale.Sale{}, sale.ErrSaleNotFound
	}
	if _, ok := r.s.campaigns[updated.CampaignID]; !ok {
		return sale.Sale{}, sale.ErrCampaignNotFound
	}

	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.sales[updated.ID] = updated
	return updated, nil
}

func (r *SaleStore) Delete(_ context.Context, id string, employeeID string, entryDate time.Time) (sale.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.saleWriteErr != nil {
		return sale.Sale{}, fmt.Errorf("%w: %v", sale.ErrSaleNotDeleted, r.s.saleWriteErr)
	}
	current, ok := r.s.sales[id]
	if !ok || current.EmployeeID != employeeID || !current.EntryDate.Equal(entryDate) {
		return sale.Sale{}, sale.ErrSaleNotFound
	}
	delete(r.s.sales, id)
	return current, nil
}

func (r *SaleStore) ListByEmployee(_ context.Context, employeeID string) ([]sale.Sale, error) {
	result := r.filter(func(s sale.Sale) bool { return s.EmployeeID == employeeID })
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Commission.GreaterThan(result[j].Commission)
	})
	return result, nil
}

func (r *SaleStore) ListByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) ([]sale.Sale, error) {
	result := r.filter(func(s sale.Sale) bool {
		return s.EmployeeID == employeeID && s.EntryDate.Equal(date)
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *SaleStore) AggregateClosed(_ context.Context, employeeID string, date time.Time) (sale.Aggregate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	agg := sale.Aggregate{CommissionTotal: decimal.Zero}
	for _, s := range r.s.sales {
		if s.EmployeeID != employeeID || !s.EntryDate.Equal(date) || s.Status != sale.StatusClosed {
			continue
		}
		agg.ClosedCount++
		agg.CommissionTotal = agg.CommissionTotal.Add(s.Commission)
	}
	return agg, nil
}

func (r *SaleStore) filter(keep func(sale.Sale) bool) []sale.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []sale.Sale
	for _, s := range r.s.sales {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
