package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Match(t *testing.T) {
	dept := int64(2)
	hours := 7.5
	wage := decimal.NewFromInt(1500)
	checkIn := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	emp := Employee{ID: 5, Active: true, DepartmentID: &dept}
	att := Attendance{ID: 1, EmployeeID: 5, CheckIn: checkIn, WorkedHours: &hours, DepartmentID: &dept}
	contract := Contract{EmployeeID: 5, State: ContractStateOpen, Wage: &wage}

	tests := []struct {
		name   string
		filter Filter
		rec    Record
		want   bool
	}{
		{"empty filter matches", nil, emp, true},
		{"bool equality", Filter{}.Where(FieldActive, OpEq, true), emp, true},
		{"bool mismatch", Filter{}.Where(FieldActive, OpEq, false), emp, false},
		{"department", Filter{}.InDepartment(&dept), emp, true},
		{"nil department is no filter", Filter{}.InDepartment(nil), emp, true},
		{"other department", Filter{}.Where(FieldDepartmentID, OpEq, int64(3)), emp, false},
		{"int vs int64", Filter{}.Where(FieldID, OpEq, 5), emp, true},
		{"in list", Filter{}.Where(FieldID, OpIn, []int64{1, 5}), emp, true},
		{"not in list", Filter{}.Where(FieldID, OpIn, []int64{1, 2}), emp, false},
		{"in non slice", Filter{}.Where(FieldID, OpIn, int64(5)), emp, false},
		{"time range", Filter{}.
			Where(FieldCheckIn, OpGte, checkIn).
			Where(FieldCheckIn, OpLt, checkIn.Add(time.Hour)), att, true},
		{"time before", Filter{}.Where(FieldCheckIn, OpLt, checkIn), att, false},
		{"float greater", Filter{}.Where(FieldWorkedHours, OpGt, 0.0), att, true},
		{"float not equal", Filter{}.Where(FieldWorkedHours, OpNe, 7.5), att, false},
		{"decimal wage", Filter{}.Where(FieldWage, OpGte, 1500), contract, true},
		{"string state", Filter{}.Where(FieldState, OpEq, ContractStateOpen), contract, true},
		{"type mismatch never matches", Filter{}.Where(FieldState, OpEq, 1), contract, false},
		{"missing attribute fails", Filter{}.Where(FieldDepartmentID, OpNe, int64(9)), contract, false},
		{"unknown field fails", Filter{}.Where(FieldCheckIn, OpEq, checkIn), emp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.rec))
		})
	}
}

func TestFilter_WhereDoesNotAlias(t *testing.T) {
	base := make(Filter, 0, 4).Where(FieldActive, OpEq, true)
	a := base.Where(FieldID, OpEq, 1)
	b := base.Where(FieldID, OpEq, 2)

	assert.Len(t, base, 1)
	assert.Equal(t, 1, a[1].Value)
	assert.Equal(t, 2, b[1].Value)
}
