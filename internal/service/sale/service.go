package sale

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
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
)

type SaleServiceImpl struct {
	tx database.Transactor
	sale.SaleRepository
	shifts        shift.ShiftRepository
	metricService metric.MetricService
	clock         clock.Clock
}

// bucketChange names the bucket a committed mutation touched and how its
// metrics must be rederived.
type bucketChange struct {
	EmployeeID string
	Day        time.Time
	Timezone   string
	Live       bool
}

// Create implements sale.SaleService.
func (s *SaleServiceImpl) Create(ctx context.Context, req sale.CreateSaleRequest) (sale.MutationResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.MutationResponse{}, err
	}

	today, err := s.clock.LocalToday(req.Timezone)
	if err != nil {
		return sale.MutationResponse{}, err
	}

	// a sale can only be filed against a bucket that exists
	var created sale.Sale
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.shifts.GetByEmployeeAndDate(txCtx, req.EmployeeID, today); err != nil {
			return err
		}

		saved, err := s.SaleRepository.Create(txCtx, sale.Sale{
			EmployeeID:     req.EmployeeID,
			CampaignID:     req.CampaignID,
			EntryDate:      today,
			SaleName:       req.SaleName,
			CustomerNumber: req.CustomerNumber,
			Price:          req.Price,
			Discount:       req.Discount,
			Tax:            req.Tax,
			Commission:     req.Commission,
			Status:         sale.NormalizeStatus(req.Status),
			Details:        req.Details,
		})
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return sale.MutationResponse{}, fmt.Errorf("failed to create sale: %w", err)
	}

	resp := sale.MutationResponse{Sale: toSaleResponse(created)}
	if created.Status == sale.StatusClosed {
		s.recompute(ctx, &resp, bucketChange{
			EmployeeID: created.EmployeeID,
			Day:        created.EntryDate,
			Timezone:   req.Timezone,
			Live:       true,
		})
	}
	return resp, nil
}

// Edit implements sale.SaleService.
func (s *SaleServiceImpl) Edit(ctx context.Context, req sale.EditSaleRequest) (sale.MutationResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.MutationResponse{}, err
	}
	entryDate, err := clock.ParseDate(req.EntryDate)
	if err != nil {
		return sale.MutationResponse{}, err
	}

	var before, after sale.Sale
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.SaleRepository.GetForUpdate(txCtx, req.ID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !current.EntryDate.Equal(entryDate) {
			return sale.ErrSaleNotFound
		}
		before = current

		updated, err := s.SaleRepository.Update(txCtx, applyEdit(current, req))
		if err != nil {
			return err
		}
		after = updated
		return nil
	})
	if err != nil {
		return sale.MutationResponse{}, fmt.Errorf("failed to edit sale: %w", err)
	}

	resp := sale.MutationResponse{Sale: toSaleResponse(after)}
	// closed -> open shrinks the closed set just like a delete does
	if before.Status == sale.StatusClosed || after.Status == sale.StatusClosed {
		s.recompute(ctx, &resp, bucketChange{EmployeeID: after.EmployeeID, Day: after.EntryDate})
	}
	return resp, nil
}

// Delete implements sale.SaleService.
func (s *SaleServiceImpl) Delete(ctx context.Context, req sale.DeleteSaleRequest) (sale.MutationResponse, error) {
	if err := req.Validate(); err != nil {
		return sale.MutationResponse{}, err
	}
	entryDate, err := clock.ParseDate(req.EntryDate)
	if err != nil {
		return sale.MutationResponse{}, err
	}

	deleted, err := s.SaleRepository.Delete(ctx, req.ID, req.EmployeeID, entryDate)
	if err != nil {
		return sale.MutationResponse{}, fmt.Errorf("failed to delete sale: %w", err)
	}

	resp := sale.MutationResponse{Sale: toSaleResponse(deleted)}
	if deleted.Status == sale.StatusClosed {
		s.recompute(ctx, &resp, bucketChange{EmployeeID: deleted.EmployeeID, Day: deleted.EntryDate})
	}
	return resp, nil
}

// recompute is the only place sale mutations rederive bucket metrics. It
// runs after the mutation has committed, so a failure is recorded on resp
// and logged instead of being returned.
func (s *SaleServiceImpl) recompute(ctx context.Context, resp *sale.MutationResponse, change bucketChange) {
	var (
		metrics shift.Metrics
		err     error
	)
	if change.Live {
		metrics, err = s.metricService.RecomputeLive(ctx, change.EmployeeID, change.Day, change.Timezone)
	} else {
		metrics, err = s.metricService.RecomputeHistorical(ctx, change.EmployeeID, change.Day)
	}

	if err != nil {
		warning := &metric.RecomputationWarning{EmployeeID: change.EmployeeID, Day: change.Day, Err: err}
		slog.Warn("metric recomputation failed after sale mutation",
			"employee_id", change.EmployeeID,
			"entry_date", clock.FormatDate(change.Day),
			"live", change.Live,
			"error", err,
		)
		resp.MetricsStale = true
		resp.Warning = warning.Error()
		return
	}
	resp.Metrics = shift.NewMetricsResponse(metrics)
}

// Get implements sale.SaleService.
func (s *SaleServiceImpl) Get(ctx context.Context, id string, employeeID string) (sale.SaleResponse, error) {
	if !validator.IsValidUUID(id) {
		return sale.SaleResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	found, err := s.SaleRepository.GetByID(ctx, id, employeeID)
	if err != nil {
		return sale.SaleResponse{}, err
	}
	return *toSaleResponse(found), nil
}

// ListMine implements sale.SaleService.
func (s *SaleServiceImpl) ListMine(ctx context.Context, employeeID string) ([]sale.SaleResponse, error) {
	sales, err := s.SaleRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return toSaleResponses(sales), nil
}

// ListByDate implements sale.SaleService.
func (s *SaleServiceImpl) ListByDate(ctx context.Context, employeeID string, date string) ([]sale.SaleResponse, error) {
	day, valid := validator.IsValidDate(date)
	if !valid {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	sales, err := s.SaleRepository.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales by date: %w", err)
	}
	return toSaleResponses(sales), nil
}

func applyEdit(current sale.Sale, req sale.EditSaleRequest) sale.Sale {
	updated := current
	if req.CampaignID != nil {
		updated.CampaignID = *req.CampaignID
	}
	if req.SaleName != nil {
		updated.SaleName = *req.SaleName
	}
	if req.CustomerNumber != nil {
		updated.CustomerNumber = *req.CustomerNumber
	}
	if req.Price != nil {
		updated.Price = *req.Price
	}
	if req.Discount != nil {
		updated.Discount = *req.Discount
	}
	if req.Tax != nil {
		updated.Tax = *req.Tax
	}
	if req.Commission != nil {
		updated.Commission = *req.Commission
	}
	if req.Status != nil {
		updated.Status = sale.NormalizeStatus(*req.Status)
	}
	if req.Details != nil {
		updated.Details = *req.Details
	}
	return updated
}

func toSaleResponses(sales []sale.Sale) []sale.SaleResponse {
	resp := make([]sale.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, *toSaleResponse(s))
	}
	return resp
}

func toSaleResponse(s sale.Sale) *sale.SaleResponse {
	return &sale.SaleResponse{
		ID:             s.ID,
		EmployeeID:     s.EmployeeID,
		CampaignID:     s.CampaignID,
		EntryDate:      clock.FormatDate(s.EntryDate),
		SaleName:       s.SaleName,
		CustomerNumber: s.CustomerNumber,
		Price:          s.Price,
		Discount:       s.Discount,
		Tax:            s.Tax,
		Commission:     s.Commission,
		Status:         string(s.Status),
		Details:        s.Details,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewSaleService(
	tx database.Transactor,
	saleRepo sale.SaleRepository,
	shiftRepo shift.ShiftRepository,
	metricService metric.MetricService,
	clk clock.Clock,
) sale.SaleService {
	return &SaleServiceImpl{
		tx:             tx,
		SaleRepository: saleRepo,
		shifts:         shiftRepo,
		metricService:  metricService,
		clock:          clk,
	}
}
