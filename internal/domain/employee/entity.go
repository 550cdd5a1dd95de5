package employee

import (
	"time"
)

type Employee struct {
	ID             string
	FirstName      string
	LastName       string
	EmployeeNumber *string
	Email          string
	PasswordHash   string
	Role           Role
	ManagerID      *string
	CampaignID     *string
	Timezone       string
	ShiftDuration  *float64 // preferred daily shift length, nil means company default
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Role string

const (
	RoleManager        Role = "manager"
	RoleSalesAssociate Role = "sales associate"
)

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleSalesAssociate
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
