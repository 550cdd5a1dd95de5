package sale

import (
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SALE DTOs
// ========================================

// CreateSaleRequest never carries an entry date: the sale is always filed
// under the employee's local today, computed on the server.
type CreateSaleRequest struct {
	EmployeeID     string          `json:"-"`
	Timezone       string          `json:"-"`
	CampaignID     string          `json:"campaign_id"`
	SaleName       string          `json:"sale_name"`
	CustomerNumber string          `json:"customer_number"`
	Price          decimal.Decimal `json:"price"`
	Discount       decimal.Decimal `json:"discount"`
	Tax            decimal.Decimal `json:"tax"`
	Commission     decimal.Decimal `json:"commission"`
	Status         string          `json:"status"`
	Details        string          `json:"details"`
}

func (r *CreateSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CampaignID) {
		errs = append(errs, validator.ValidationError{
			Field:   "campaign_id",
			Message: "campaign_id is required",
		})
	} else if !validator.IsValidUUID(r.CampaignID) {
		errs = append(errs, validator.ValidationError{
			Field:   "campaign_id",
			Message: "campaign_id must be a valid UUID",
		})
	}

	errs = append(errs, validateStatus(r.Status)...)
	errs = append(errs, validateAmounts(&r.Price, &r.Discount, &r.Tax, &r.Commission)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditSaleRequest updates any subset of fields. EntryDate names the bucket
// the sale is filed under and is required.
type EditSaleRequest struct {
	ID             string           `json:"-"`
	EmployeeID     string           `json:"-"`
	EntryDate      string           `json:"entry_date"` // YYYY-MM-DD
	CampaignID     *string          `json:"campaign_id,omitempty"`
	SaleName       *string          `json:"sale_name,omitempty"`
	CustomerNumber *string          `json:"customer_number,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Discount       *decimal.Decimal `json:"discount,omitempty"`
	Tax            *decimal.Decimal `json:"tax,omitempty"`
	Commission     *decimal.Decimal `json:"commission,omitempty"`
	Status         *string          `json:"status,omitempty"`
	Details        *string          `json:"details,omitempty"`
}

func (r *EditSaleRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateSaleKey(r.ID, r.EmployeeID, r.EntryDate)...)

	if r.CampaignID != nil && !validator.IsValidUUID(*r.CampaignID) {
		errs = append(errs, validator.ValidationError{
			Field:   "campaign_id",
			Message: "campaign_id must be a valid UUID",
		})
	}
	if r.Status != nil {
		errs = append(errs, validateStatus(*r.Status)...)
	}
	errs = append(errs, validateAmounts(r.Price, r.Discount, r.Tax, r.Commission)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteSaleRequest struct {
	ID         string `json:"-"`
	EmployeeID string `json:"-"`
	EntryDate  string `json:"entry_date"` // YYYY-MM-DD
}

func (r *DeleteSaleRequest) Validate() error {
	if errs := validateSaleKey(r.ID, r.EmployeeID, r.EntryDate); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSaleKey(id, employeeID, entryDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(id) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(entryDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_date",
			Message: "entry_date is required",
		})
	} else if _, valid := validator.IsValidDate(entryDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_date",
			Message: "entry_date must be in YYYY-MM-DD format",
		})
	}
	return errs
}

func validateStatus(status string) validator.ValidationErrors {
	if validator.IsEmpty(status) {
		return validator.ValidationErrors{{Field: "status", Message: "status is required"}}
	}
	if !NormalizeStatus(status).IsValid() {
		return validator.ValidationErrors{{Field: "status", Message: "status must be one of: open, closed"}}
	}
	return nil
}

func validateAmounts(price, discount, tax, commission *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"price", price},
		{"discount", discount},
		{"tax", tax},
		{"commission", commission},
	}
	for _, f := range fields {
		if f.value != nil && !validator.IsNonNegative(*f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must not be negative",
			})
		}
	}
	return errs
}

type SaleResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	CampaignID     string          `json:"campaign_id"`
	EntryDate      string          `json:"entry_date"`
	SaleName       string          `json:"sale_name"`
	CustomerNumber string          `json:"customer_number"`
	Price          decimal.Decimal `json:"price"`
	Discount       decimal.Decimal `json:"discount"`
	Tax            decimal.Decimal `json:"tax"`
	Commission     decimal.Decimal `json:"commission"`
	Status         string          `json:"status"`
	Details        string          `json:"details"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// MutationResponse reports a committed sale mutation. When recomputing the
// bucket's metrics failed, MetricsStale is set and Warning explains why; the
// mutation itself still succeeded.
type MutationResponse struct {
	Sale         *SaleResponse          `json:"sale,omitempty"`
	Metrics      *shift.MetricsResponse `json:"metrics,omitempty"`
	MetricsStale bool                   `json:"metrics_stale"`
	Warning      string                 `json:"warning,omitempty"`
}
