package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type saleRepositoryImpl struct {
	db *database.DB
}

const saleColumns = `
	id, employee_id, campaign_id, entry_date, sale_name, customer_number,
	price, discount, tax, commission, status, details, created_at, updated_at
`

// Create implements sale.SaleRepository.
func (s *saleRepositoryImpl) Create(ctx context.Context, newSale sale.Sale) (sale.Sale, error) {
	q := GetQuerier(ctx, s.db)

	id, err := newID()
	if err != nil {
		return sale.Sale{}, fmt.Errorf("%w: %w", sale.ErrSaleNotSaved, err)
	}

	query := `
		INSERT INTO sales (
			id, employee_id, campaign_id, entry_date, sale_name, customer_number,
			price, discount, tax, commission, status, details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + saleColumns

	created, err := scanSale(q.QueryRow(ctx, query,
		id,
		newSale.EmployeeID,
		newSale.CampaignID,
		newSale.EntryDate,
		newSale.SaleName,
		newSale.CustomerNumber,
		newSale.Price,
		newSale.Discount,
		newSale.Tax,
		newSale.Commission,
		newSale.Status,
		newSale.Details,
	))
	if err != nil {
		return sale.Sale{}, translateSaleError(err, sale.ErrSaleNotSaved)
	}
	return created, nil
}

// GetByID implements sale.SaleRepository.
func (s *saleRepositoryImpl) GetByID(ctx context.Context, id string, employeeID string) (sale.Sale, error) {
	return s.get(ctx, id, employeeID, "")
}

// GetForUpdate implements sale.SaleRepository.
func (s *saleRepositoryImpl) GetForUpdate(ctx context.Context, id string, employeeID string) (sale.Sale, error) {
	return s.get(ctx, id, employeeID, "FOR UPDATE")
}

func (s *saleRepositoryImpl) get(ctx context.Context, id string, employeeID string, lock string) (sale.Sale, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND employee_id = $2 ` + lock

	found, err := scanSale(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sale.Sale{}, sale.ErrSaleNotFound
		}
		return sale.Sale{}, fmt.Errorf("failed to get sale: %w", err)
	}
	return found, nil
}

// Update implements sale.SaleRepository.
func (s *saleRepositoryImpl) Update(ctx context.Context, updated sale.Sale) (sale.Sale, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE sales
		SET campaign_id = $4, sale_name = $5, customer_number = $6,
			price = $7, discount = $8, tax = $9, commission = $10,
			status = $11, details = $12, updated_at = NOW()
		WHERE id = $1 AND employee_id = $2 AND entry_date = $3
		RETURNING ` + saleColumns

	result, err := scanSale(q.QueryRow(ctx, query,
		updated.ID,
		updated.EmployeeID,
		updated.EntryDate,
		updated.CampaignID,
		updated.SaleName,
		updated.CustomerNumber,
		updated.Price,
		updated.Discount,
		updated.Tax,
		updated.Commission,
		updated.Status,
		updated.Details,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sale.Sale{}, sale.ErrSaleNotFound
		}
		return sale.Sale{}, translateSaleError(err, sale.ErrSaleNotEdited)
	}
	return result, nil
}

// Delete implements sale.SaleRepository.
func (s *saleRepositoryImpl) Delete(ctx context.Context, id string, employeeID string, entryDate time.Time) (sale.Sale, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		DELETE FROM sales
		WHERE id = $1 AND employee_id = $2 AND entry_date = $3
		RETURNING ` + saleColumns

	deleted, err := scanSale(q.QueryRow(ctx, query, id, employeeID, entryDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sale.Sale{}, sale.ErrSaleNotFound
		}
		return sale.Sale{}, fmt.Errorf("%w: %w", sale.ErrSaleNotDeleted, err)
	}
	return deleted, nil
}

// ListByEmployee implements sale.SaleRepository.
func (s *saleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]sale.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE employee_id = $1
		ORDER BY commission DESC, created_at DESC
	`
	return s.list(ctx, query, employeeID)
}

// ListByEmployeeAndDate implements sale.SaleRepository.
func (s *saleRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]sale.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE employee_id = $1 AND entry_date = $2
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, employeeID, date)
}

func (s *saleRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]sale.Sale, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []sale.Sale
	for rows.Next() {
		found, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, found)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

// AggregateClosed implements sale.SaleRepository. Count and sum come from the
// same statement, so they always describe the same snapshot.
func (s *saleRepositoryImpl) AggregateClosed(ctx context.Context, employeeID string, date time.Time) (sale.Aggregate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(commission), 0)
		FROM sales
		WHERE employee_id = $1 AND entry_date = $2 AND status = $3
	`

	var (
		agg   sale.Aggregate
		total decimal.Decimal
	)
	if err := q.QueryRow(ctx, query, employeeID, date, sale.StatusClosed).Scan(&agg.ClosedCount, &total); err != nil {
		return sale.Aggregate{}, fmt.Errorf("failed to aggregate closed sales: %w", err)
	}
	agg.CommissionTotal = total
	return agg, nil
}

func scanSale(row pgx.Row) (sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CampaignID, &s.EntryDate, &s.SaleName, &s.CustomerNumber,
		&s.Price, &s.Discount, &s.Tax, &s.Commission, &s.Status, &s.Details, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// translateSaleError maps constraint violations onto domain errors and wraps
// anything else in the given persistence error.
func translateSaleError(err error, persistence error) error {
	code, constraint := pgErrorCode(err)
	if code == pgForeignKeyViolation {
		switch constraint {
		case "sales_campaign_id_fkey":
			return sale.ErrCampaignNotFound
		case "sales_employee_id_fkey":
			return employee.ErrEmployeeNotFound
		}
	}
	return fmt.Errorf("%w: %w", persistence, err)
}

func NewSaleRepository(db *database.DB) sale.SaleRepository {
	return &saleRepositoryImpl{db: db}
}
