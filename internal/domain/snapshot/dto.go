package snapshot

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

type CreateSnapshotRequest struct {
	Name         *string `json:"name,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	DateFrom     string  `json:"date_from,omitempty"`
	DateTo       string  `json:"date_to,omitempty"`
}

func (r *CreateSnapshotRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Name != nil && len(*r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if r.DepartmentID != nil && *r.DepartmentID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a positive integer",
		})
	}

	if r.DateFrom != "" {
		if _, ok := validator.IsValidDate(r.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}
	if r.DateTo != "" {
		if _, ok := validator.IsValidDate(r.DateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSnapshotFilter struct {
	Page  int
	Limit int
}

// ParseListSnapshotFilter reads page/limit query values, falling back to
// page 1 and 20 items.
func ParseListSnapshotFilter(page, limit string) ListSnapshotFilter {
	f := ListSnapshotFilter{Page: 1, Limit: 20}
	if p, err := strconv.Atoi(page); err == nil && p > 0 {
		f.Page = p
	}
	if l, err := strconv.Atoi(limit); err == nil && l > 0 && l <= 100 {
		f.Limit = l
	}
	return f
}

type SnapshotResponse struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	DepartmentID           *int64  `json:"department_id"`
	DepartmentName         *string `json:"department_name,omitempty"`
	DateFrom               string  `json:"date_from"` // Format: "YYYY-MM-DD"
	DateTo                 string  `json:"date_to"`   // Format: "YYYY-MM-DD"
	TotalEmployees         int64   `json:"total_employees"`
	TotalInactiveEmployees int64   `json:"total_inactive_employees"`
	TurnoverRate           float64 `json:"turnover_rate"`
	AvgSalary              float64 `json:"avg_salary"`
	TotalSalaryCost        float64 `json:"total_salary_cost"`
	TotalLeaves            int64   `json:"total_leaves"`
	AvgLeavesPerEmployee   float64 `json:"avg_leaves_per_employee"`
	AvgDailyHours          float64 `json:"avg_daily_hours"`
	TotalWorkedHours       float64 `json:"total_worked_hours"`
	AvgKPIScore            float64 `json:"avg_kpi_score"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

type ListSnapshotResponse struct {
	Snapshots  []SnapshotResponse `json:"snapshots"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ToResponse converts the entity to its API shape
func (s StatsSnapshot) ToResponse() SnapshotResponse {
	return SnapshotResponse{
		ID:                     s.ID,
		Name:                   s.Name,
		DepartmentID:           s.DepartmentID,
		DepartmentName:         s.DepartmentName,
		DateFrom:               s.DateFrom.Format(time.DateOnly),
		DateTo:                 s.DateTo.Format(time.DateOnly),
		TotalEmployees:         s.TotalEmployees,
		TotalInactiveEmployees: s.TotalInactiveEmployees,
		TurnoverRate:           s.TurnoverRate,
		AvgSalary:              s.AvgSalary.Round(2).InexactFloat64(),
		TotalSalaryCost:        s.TotalSalaryCost.Round(2).InexactFloat64(),
		TotalLeaves:            s.TotalLeaves,
		AvgLeavesPerEmployee:   s.AvgLeavesPerEmployee,
		AvgDailyHours:          s.AvgDailyHours,
		TotalWorkedHours:       s.TotalWorkedHours,
		AvgKPIScore:            s.AvgKPIScore,
		CreatedAt:              s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              s.UpdatedAt.Format(time.RFC3339),
	}
}
