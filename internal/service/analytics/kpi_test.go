package analytics

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
)

func TestKPIScore(t *testing.T) {
	tests := []struct {
		name         string
		leaves, days int
		want         float64
	}{
		{"no leaves no attendance", 0, 0, 100},
		{"leave penalty", 2, 0, 94},
		{"penalty capped", 50, 0, 70},
		{"full attendance", 0, 22, 100},
		{"attendance above working days clamps", 0, 30, 100},
		{"half attendance", 0, 11, 50},
		{"penalty and attendance", 1, 11, 48.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KPIScore(tt.leaves, tt.days), 1e-9)
		})
	}
}

func TestKPIScore_AlwaysInBounds(t *testing.T) {
	for leaves := 0; leaves <= 40; leaves++ {
		for days := 0; days <= 31; days++ {
			s := KPIScore(leaves, days)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
	}
}

func TestKPIDistribution(t *testing.T) {
	got := KPIDistribution([]float64{5, 15, 25, 95})
	assert.Equal(t, []analytics.KPIBucket{
		{ScoreRange: "0-9", Count: 1},
		{ScoreRange: "10-19", Count: 1},
		{ScoreRange: "20-29", Count: 1},
		{ScoreRange: "90-99", Count: 1},
	}, got)

	assert.Equal(t, []analytics.KPIBucket{
		{ScoreRange: "90-99", Count: 2},
		{ScoreRange: "100-109", Count: 1},
	}, KPIDistribution([]float64{100, 90, 99.99}))

	assert.Empty(t, KPIDistribution(nil))
}

func TestKPIAverage(t *testing.T) {
	assert.Equal(t, 0.0, KPIAverage(nil))
	assert.Equal(t, 50.0, KPIAverage([]float64{0, 100}))
	assert.Equal(t, 33.33, KPIAverage([]float64{100, 0, 0}))
}

func TestScoreEmployees(t *testing.T) {
	employees := []analytics.Employee{{ID: 1}, {ID: 2}, {ID: 3}}
	leaves := []analytics.LeaveRequest{
		{EmployeeID: 1, State: analytics.LeaveStateValidate},
		{EmployeeID: 1, State: analytics.LeaveStateValidate},
		{EmployeeID: 2, State: "refuse"},
	}
	attendance := []analytics.Attendance{
		{EmployeeID: 2, CheckIn: day(2024, 6, 10, 8), WorkedHours: ptr(8.0)},
		{EmployeeID: 2, CheckIn: day(2024, 6, 10, 13), WorkedHours: ptr(3.0)},
		{EmployeeID: 3, CheckIn: day(2024, 6, 10, 8), WorkedHours: ptr(0.0)},
	}

	scores := ScoreEmployees(employees, leaves, attendance, time.UTC)
	assert.InDelta(t, 94, scores[0], 1e-9)
	assert.InDelta(t, 100.0/22, scores[1], 1e-9)
	assert.InDelta(t, 100, scores[2], 1e-9)
}

func TestYearBoundsAndWindow(t *testing.T) {
	start, end := YearBounds(fixedNow)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC), AttendanceWindowStart(fixedNow))
}
