package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ContractStateOpen  = "open"
	LeaveStateValidate = "validate"
)

type Department struct {
	ID   int64
	Name string
}

type Employee struct {
	ID           int64
	Name         string
	Active       bool
	DepartmentID *int64

	// Joined from departments
	DepartmentName *string
}

type Contract struct {
	ID         int64
	EmployeeID int64
	State      string
	Wage       *decimal.Decimal

	// Joined from employees / departments
	DepartmentID   *int64
	DepartmentName *string
}

// IsOpen reports whether the contract is currently in effect.
func (c Contract) IsOpen() bool {
	return c.State == ContractStateOpen
}

// WageOrZero returns the wage, treating an absent wage as zero.
func (c Contract) WageOrZero() decimal.Decimal {
	if c.Wage == nil {
		return decimal.Zero
	}
	return *c.Wage
}

type Attendance struct {
	ID          int64
	EmployeeID  int64
	CheckIn     time.Time
	WorkedHours *float64

	// Joined from employees
	DepartmentID *int64
}

// Hours returns worked hours, treating an absent value as zero.
func (a Attendance) Hours() float64 {
	if a.WorkedHours == nil {
		return 0
	}
	return *a.WorkedHours
}

type LeaveRequest struct {
	ID              int64
	EmployeeID      int64
	State           string
	RequestDateFrom *time.Time

	// Joined from employees
	DepartmentID *int64
}

// IsValidated reports whether the leave was approved and counts as taken.
func (l LeaveRequest) IsValidated() bool {
	return l.State == LeaveStateValidate
}
