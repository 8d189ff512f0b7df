package analytics

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// TurnoverRate is the share of inactive employees in a population, in percent.
func TurnoverRate(active, inactive int64) float64 {
	total := active + inactive
	if total <= 0 {
		return 0
	}
	return round2(float64(inactive) / float64(total) * 100)
}

// AverageSalary is the mean wage of open contracts. Contracts without a
// positive wage are not counted.
func AverageSalary(contracts []analytics.Contract) float64 {
	sum, n := decimal.Zero, int64(0)
	for _, c := range contracts {
		if !c.IsOpen() || c.Wage == nil || !c.Wage.IsPositive() {
			continue
		}
		sum = sum.Add(*c.Wage)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(n)).Round(2).InexactFloat64()
}

// TotalSalary sums the wages of open contracts.
func TotalSalary(contracts []analytics.Contract) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range contracts {
		if c.IsOpen() {
			sum = sum.Add(c.WageOrZero())
		}
	}
	return sum
}

// CurrentSalary returns the wage of the first open contract, or zero.
func CurrentSalary(contracts []analytics.Contract) float64 {
	for _, c := range contracts {
		if c.IsOpen() {
			return c.WageOrZero().Round(2).InexactFloat64()
		}
	}
	return 0
}

// AverageDailyHours divides the total positive worked hours by the number of
// distinct check-in days, with days taken in loc.
func AverageDailyHours(records []analytics.Attendance, loc *time.Location) (avg float64, total float64) {
	days := make(map[string]struct{})
	for _, a := range records {
		h := a.Hours()
		if h <= 0 {
			continue
		}
		total += h
		days[a.CheckIn.In(loc).Format(time.DateOnly)] = struct{}{}
	}
	if len(days) == 0 {
		return 0, 0
	}
	return round2(total / float64(len(days))), round2(total)
}
