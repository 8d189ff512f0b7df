package analytics

import (
	"context"
	"io"
)

// AnalyticsService defines the dashboard analytics operations
type AnalyticsService interface {
	// GetAnalytics validates the request and returns the assembled dashboard
	// data. Failures are folded into the error-shaped response, never returned.
	GetAnalytics(ctx context.Context, req AnalyticsRequest) *AnalyticsResponse

	// Compute is GetAnalytics without the error folding
	Compute(ctx context.Context, req AnalyticsRequest) (*AnalyticsResponse, error)

	// Export writes the dashboard data for the request as an XLSX workbook
	Export(ctx context.Context, req AnalyticsRequest, w io.Writer) error

	// ListDepartments returns every department for the filter dropdown
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)

	// GetEmployeeMetrics returns the derived analytics of a single employee
	GetEmployeeMetrics(ctx context.Context, employeeID int64) (*EmployeeMetricsResponse, error)
}
