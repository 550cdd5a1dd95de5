// Package memory provides in-memory repositories for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/salesverse/salesverse-backend-go/internal/domain/employee"
	"github.com/salesverse/salesverse-backend-go/internal/domain/sale"
	"github.com/salesverse/salesverse-backend-go/internal/domain/shift"
	"github.com/salesverse/salesverse-backend-go/internal/pkg/database"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Store keeps employees, campaigns, daily logs and sales in maps. Transactions
// are serialized on a single mutex, which is stronger than the per-row locks
// Postgres takes but gives the same isolation to recomputations. Writes made
// inside a failed transaction are not rolled back.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	employees map[string]employee.Employee
	campaigns map[string]string // id -> name
	logs      map[logKey]shift.ShiftEntry
	sales     map[string]sale.Sale

	saleWriteErr error
	now          func() time.Time
}

type logKey struct {
	EmployeeID string
	Date       string
}

func keyOf(employeeID string, date time.Time) logKey {
	return logKey{EmployeeID: employeeID, Date: date.Format("2006-01-02")}
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		campaigns: make(map[string]string),
		logs:      make(map[logKey]shift.ShiftEntry),
		sales:     make(map[string]sale.Sale),
		now:       time.Now,
	}
}

// AddEmployee seeds an employee. An empty ID gets a fresh UUID.
func (s *Store) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	s.employees[e.ID] = e
	return e
}

// AddCampaign seeds a campaign and returns its id.
func (s *Store) AddCampaign(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newID()
	s.campaigns[id] = name
	return id
}

// FailSaleWrites makes every subsequent sale write return err. Pass nil to reset.
func (s *Store) FailSaleWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saleWriteErr = err
}

// SetNow replaces the clock used for created_at and updated_at stamps.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// DeleteLog drops a daily log, for simulating a missing bucket.
func (s *Store) DeleteLog(employeeID string, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, keyOf(employeeID, date))
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// =============================================================================
// TRANSACTOR
// =============================================================================

type txMarker struct{}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txMarker{}, true))
}

var _ database.Transactor = (*Store)(nil)

// Shifts returns the store's view as a shift.ShiftRepository.
func (s *Store) Shifts() *ShiftStore { return &ShiftStore{s} }

// Sales returns the store's view as a sale.SaleRepository.
func (s *Store) Sales() *SaleStore { return &SaleStore{s} }

// Employees returns the store's view as an employee.EmployeeRepository.
func (s *Store) Employees() *EmployeeStore { return &EmployeeStore{s} }

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeStore struct {
	s *Store
}

var _ employee.EmployeeRepository = (*EmployeeStore)(nil)

func (r *EmployeeStore) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeStore) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
