package sale

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// NormalizeStatus folds client input such as " Closed " onto a Status.
func NormalizeStatus(status string) Status {
	return Status(strings.ToLower(strings.TrimSpace(status)))
}

type Sale struct {
	ID             string
	EmployeeID     string
	CampaignID     string
	EntryDate      time.Time // calendar day the sale counts against
	SaleName       string
	CustomerNumber string
	Price          decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Commission     decimal.Decimal
	Status         Status
	Details        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Aggregate is what the metric engine reads from one bucket: the closed
// sales only, counted and summed by the same read.
type Aggregate struct {
	ClosedCount     int64
	CommissionTotal decimal.Decimal
}
