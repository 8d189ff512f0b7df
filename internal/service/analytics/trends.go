package analytics

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// AttendanceTrend averages worked hours per check-in day. Records outside the
// range or without positive worked hours are ignored, so a day whose only
// records had zero hours does not appear.
func AttendanceTrend(records []analytics.Attendance, rng analytics.DateRange) []analytics.AttendancePoint {
	loc := rng.Start.Location()

	type acc struct {
		sum float64
		n   int
	}
	byDay := make(map[string]*acc)
	for _, a := range records {
		h := a.Hours()
		if h <= 0 {
			continue
		}
		checkIn := a.CheckIn.In(loc)
		if !rng.ContainsDay(checkIn) {
			continue
		}
		day := checkIn.Format(time.DateOnly)
		d, ok := byDay[day]
		if !ok {
			d = &acc{}
			byDay[day] = d
		}
		d.sum += h
		d.n++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]analytics.AttendancePoint, 0, len(days))
	for _, day := range days {
		d := byDay[day]
		out = append(out, analytics.AttendancePoint{
			Date:        day,
			WorkedHours: round2(d.sum / float64(d.n)),
		})
	}
	return out
}

// SalaryDistribution sums open-contract wages per department name. Contracts
// of employees without a department are skipped.
func SalaryDistribution(contracts []analytics.Contract) []analytics.SalaryByDepartment {
	totals := make(map[string]decimal.Decimal)
	for _, c := range contracts {
		if !c.IsOpen() || c.DepartmentName == nil {
			continue
		}
		name := *c.DepartmentName
		totals[name] = totals[name].Add(c.WageOrZero())
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]analytics.SalaryByDepartment, 0, len(names))
	for _, name := range names {
		out = append(out, analytics.SalaryByDepartment{
			Department:  name,
			TotalSalary: totals[name].Round(2).InexactFloat64(),
		})
	}
	return out
}

// LeaveTrend counts validated leaves per month of their start date.
func LeaveTrend(leaves []analytics.LeaveRequest, rng analytics.DateRange) []analytics.LeavePoint {
	loc := rng.Start.Location()

	byMonth := make(map[string]int)
	for _, l := range leaves {
		if !l.IsValidated() || l.RequestDateFrom == nil {
			continue
		}
		from := dateIn(*l.RequestDateFrom, loc)
		if !rng.ContainsDay(from) {
			continue
		}
		byMonth[from.Format("2006-01")]++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]analytics.LeavePoint, 0, len(months))
	for _, m := range months {
		out = append(out, analytics.LeavePoint{Month: m, Count: byMonth[m]})
	}
	return out
}

// dateIn re-anchors a calendar date (as scanned from a DATE column, which
// carries UTC midnight) to loc without shifting the day.
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
