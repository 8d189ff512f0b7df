package snapshot

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsSnapshot is a persisted copy of the headline analytics for a
// department and period. It is recomputed on demand, never updated
// incrementally.
type StatsSnapshot struct {
	ID           string
	Name         string
	DepartmentID *int64
	DateFrom     time.Time
	DateTo       time.Time

	// Employee metrics
	TotalEmployees         int64
	TotalInactiveEmployees int64
	TurnoverRate           float64

	// Salary metrics
	AvgSalary       decimal.Decimal
	TotalSalaryCost decimal.Decimal

	// Leave metrics
	TotalLeaves          int64
	AvgLeavesPerEmployee float64

	// Attendance metrics
	AvgDailyHours    float64
	TotalWorkedHours float64

	// KPI metrics
	AvgKPIScore float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	DepartmentName *string
}
