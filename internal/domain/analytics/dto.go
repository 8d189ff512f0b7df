package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DepartmentParam is the department_id sent by the dashboard. Browsers send
// it as a string, a number, a boolean or null, so it is kept as raw text and
// interpreted by the validator.
type DepartmentParam string

func (p *DepartmentParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("true")):
		*p = DepartmentParam(data)
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = DepartmentParam(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("department_id must be a string, number or null: %w", err)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*p = ""
		return nil
	}
	*p = DepartmentParam(n.String())
	return nil
}

// AnalyticsRequest is the dashboard query.
type AnalyticsRequest struct {
	DepartmentID DepartmentParam `json:"department_id"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
}

// DateRange is an inclusive range of calendar days. Both bounds are at
// midnight in the location the range was built in.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days between Start and End.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End)
}

// ContainsDay reports whether t falls on a calendar day inside the range.
func (r DateRange) ContainsDay(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.Start.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}

// EndExclusive returns midnight of the day after End.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

func (r DateRange) String() string {
	return r.Start.Format(time.DateOnly) + ".." + r.End.Format(time.DateOnly)
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

type KPIBucket struct {
	ScoreRange string `json:"score_range"`
	Count      int    `json:"count"`
}

type AttendancePoint struct {
	Date        string  `json:"date"` // Format: "YYYY-MM-DD"
	WorkedHours float64 `json:"worked_hours"`
}

type SalaryByDepartment struct {
	Department  string  `json:"department"`
	TotalSalary float64 `json:"total_salary"`
}

type LeavePoint struct {
	Month string `json:"month"` // Format: "YYYY-MM"
	Count int    `json:"count"`
}

// AnalyticsResponse is the dashboard payload. Every field is always present;
// on failure Error is set and all metrics are zero.
type AnalyticsResponse struct {
	Error              bool                 `json:"error,omitempty"`
	Message            string               `json:"message,omitempty"`
	TotalEmployees     int64                `json:"total_employees"`
	TurnoverRate       float64              `json:"turnover_rate"`
	AvgSalary          float64              `json:"avg_salary"`
	KPIAverage         float64              `json:"kpi_average"`
	AvgKPI             float64              `json:"avg_kpi"` // kept for older dashboards
	KPIDistribution    []KPIBucket          `json:"kpi_distribution"`
	AttendanceTrends   []AttendancePoint    `json:"attendance_trends"`
	SalaryDistribution []SalaryByDepartment `json:"salary_distribution"`
	LeaveTrends        []LeavePoint         `json:"leave_trends"`
}

type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeMetricsResponse carries the per-employee derived fields
type EmployeeMetricsResponse struct {
	EmployeeID             int64   `json:"employee_id"`
	EmployeeName           string  `json:"employee_name"`
	DepartmentTurnoverRate float64 `json:"department_turnover_rate"`
	CurrentSalary          float64 `json:"current_salary"`
	KPIScore               float64 `json:"kpi_score"`
	TotalLeavesYTD         int     `json:"total_leaves_ytd"`
	AvgDailyHours          float64 `json:"avg_daily_hours"`
}

// IsNoFilter reports whether the raw department value means "all departments".
func (p DepartmentParam) IsNoFilter() bool {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "", "0", "null", "false", "undefined", "none":
		return true
	}
	return false
}
