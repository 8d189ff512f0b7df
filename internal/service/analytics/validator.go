package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

const (
	// DefaultDaysRange is the trailing window used when a bound is missing
	DefaultDaysRange = 30
	// MaxRangeDays bounds the data volume of a single request
	MaxRangeDays = 365
)

// ValidateDepartment turns the raw department_id into an optional filter.
// Empty-like values mean "all departments"; anything else must name an
// existing department.
func ValidateDepartment(ctx context.Context, store analytics.RecordStore, raw analytics.DepartmentParam) (*int64, error) {
	if raw.IsNoFilter() {
		return nil, nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid department_id %q", analytics.ErrInvalidParameter, string(raw))
	}

	exists, err := store.DepartmentExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", analytics.ErrStore, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: department %d does not exist", analytics.ErrInvalidParameter, id)
	}
	return &id, nil
}

// ValidateDateRange parses start and end (YYYY-MM-DD). When either is
// missing the range defaults to the DefaultDaysRange days ending today.
func ValidateDateRange(rawStart, rawEnd string, now time.Time) (analytics.DateRange, error) {
	rawStart, rawEnd = strings.TrimSpace(rawStart), strings.TrimSpace(rawEnd)

	var rng analytics.DateRange
	if rawStart == "" || rawEnd == "" {
		rng.End = Today(now)
		rng.Start = rng.End.AddDate(0, 0, -DefaultDaysRange)
	} else {
		loc := now.Location()
		start, err := time.ParseInLocation(time.DateOnly, rawStart, loc)
		if err != nil {
			return analytics.DateRange{}, fmt.Errorf("%w: start_date %q", analytics.ErrInvalidDateFormat, rawStart)
		}
		end, err := time.ParseInLocation(time.DateOnly, rawEnd, loc)
		if err != nil {
			return analytics.DateRange{}, fmt.Errorf("%w: end_date %q", analytics.ErrInvalidDateFormat, rawEnd)
		}
		rng = analytics.DateRange{Start: start, End: end}
	}

	if rng.Start.After(rng.End) {
		return analytics.DateRange{}, analytics.ErrInvalidRange
	}
	if rng.Days() > MaxRangeDays {
		return analytics.DateRange{}, analytics.ErrRangeTooLarge
	}
	return rng, nil
}

// Today returns midnight of now's calendar day in now's location.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
