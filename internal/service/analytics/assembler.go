package analytics

import (
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

// CoreMetrics are the headline numbers of the dashboard.
type CoreMetrics struct {
	TotalEmployees  int64
	TurnoverRate    float64
	AvgSalary       float64
	KPIAverage      float64
	KPIDistribution []analytics.KPIBucket
}

// Trends are the chart series of the dashboard.
type Trends struct {
	Attendance []analytics.AttendancePoint
	Salary     []analytics.SalaryByDepartment
	Leave      []analytics.LeavePoint
}

// Assemble merges metrics and trends into the dashboard response.
func Assemble(m CoreMetrics, t Trends) *analytics.AnalyticsResponse {
	return &analytics.AnalyticsResponse{
		TotalEmployees:     m.TotalEmployees,
		TurnoverRate:       m.TurnoverRate,
		AvgSalary:          m.AvgSalary,
		KPIAverage:         m.KPIAverage,
		AvgKPI:             m.KPIAverage,
		KPIDistribution:    nonNil(m.KPIDistribution),
		AttendanceTrends:   nonNil(t.Attendance),
		SalaryDistribution: nonNil(t.Salary),
		LeaveTrends:        nonNil(t.Leave),
	}
}

// ErrorResponse is the fixed-shape response returned for any failure.
func ErrorResponse(err error) *analytics.AnalyticsResponse {
	resp := Assemble(CoreMetrics{}, Trends{})
	resp.Error = true
	resp.Message = err.Error()
	return resp
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
