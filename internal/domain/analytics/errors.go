package analytics

import "errors"

var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange      = errors.New("start date cannot be after end date")
	ErrRangeTooLarge     = errors.New("date range cannot exceed 365 days")
	ErrStore             = errors.New("record store error")
	ErrEmployeeNotFound  = errors.New("employee not found")
)
