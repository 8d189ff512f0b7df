package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

const (
	KPIBaseScore        = 100.0
	KPILeavePenalty     = 3  // points per validated leave this year
	KPIMaxLeavePenalty  = 30 // cap on the leave deduction
	KPIAttendanceWindow = 30 // trailing days inspected for attendance
	KPIWorkingDays      = 22 // working days assumed in the attendance window
)

// KPIScore scores one employee. leaveCount is the number of validated leaves
// in the current year; attendanceDays the distinct days with worked hours in
// the trailing window. When the employee has no attendance at all only the
// leave penalty applies.
func KPIScore(leaveCount, attendanceDays int) float64 {
	score := KPIBaseScore

	if leaveCount > 0 {
		score -= math.Min(float64(leaveCount*KPILeavePenalty), KPIMaxLeavePenalty)
	}

	if attendanceDays > 0 {
		score *= float64(attendanceDays) / KPIWorkingDays
	}

	return math.Max(0, math.Min(100, score))
}

// YearBounds returns [Jan 1, Jan 1 next year) of now's year in now's location.
func YearBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(1, 0, 0)
}

// AttendanceWindowStart is the first instant inspected for KPI attendance.
func AttendanceWindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -KPIAttendanceWindow)
}

// CountLeavesByEmployee counts validated leaves per employee.
func CountLeavesByEmployee(leaves []analytics.LeaveRequest) map[int64]int {
	counts := make(map[int64]int)
	for _, l := range leaves {
		if l.IsValidated() {
			counts[l.EmployeeID]++
		}
	}
	return counts
}

// AttendanceDaysByEmployee counts distinct check-in days with positive worked
// hours per employee, with days taken in loc.
func AttendanceDaysByEmployee(records []analytics.Attendance, loc *time.Location) map[int64]int {
	seen := make(map[int64]map[string]struct{})
	for _, a := range records {
		if a.Hours() <= 0 {
			continue
		}
		days, ok := seen[a.EmployeeID]
		if !ok {
			days = make(map[string]struct{})
			seen[a.EmployeeID] = days
		}
		days[a.CheckIn.In(loc).Format(time.DateOnly)] = struct{}{}
	}

	out := make(map[int64]int, len(seen))
	for id, days := range seen {
		out[id] = len(days)
	}
	return out
}

// ScoreEmployees returns the KPI score of each employee, in input order.
// leaves must cover the current year and attendance the trailing window.
func ScoreEmployees(employees []analytics.Employee, leaves []analytics.LeaveRequest, attendance []analytics.Attendance, loc *time.Location) []float64 {
	leaveCounts := CountLeavesByEmployee(leaves)
	attendanceDays := AttendanceDaysByEmployee(attendance, loc)

	scores := make([]float64, 0, len(employees))
	for _, e := range employees {
		scores = append(scores, KPIScore(leaveCounts[e.ID], attendanceDays[e.ID]))
	}
	return scores
}

// KPIAverage is the mean score rounded to two decimals, 0 for no scores.
func KPIAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return round2(sum / float64(len(scores)))
}

// KPIDistribution buckets scores into 10-point ranges. Empty buckets are
// left out and the result is ordered by bucket.
func KPIDistribution(scores []float64) []analytics.KPIBucket {
	hist := make(map[int]int)
	for _, s := range scores {
		hist[int(math.Floor(s/10))*10]++
	}

	buckets := make([]int, 0, len(hist))
	for b := range hist {
		buckets = append(buckets, b)
	}
	sort.Ints(buckets)

	out := make([]analytics.KPIBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, analytics.KPIBucket{
			ScoreRange: fmt.Sprintf("%d-%d", b, b+9),
			Count:      hist[b],
		})
	}
	return out
}
