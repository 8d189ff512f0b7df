package analytics

import (
	"fmt"
	"reflect"
	"time"
)

// Field names an attribute a record store can filter on. The department_id
// field on contracts, attendance and leave requests is resolved through the
// owning employee.
type Field string

const (
	FieldID              Field = "id"
	FieldActive          Field = "active"
	FieldDepartmentID    Field = "department_id"
	FieldEmployeeID      Field = "employee_id"
	FieldState           Field = "state"
	FieldWage            Field = "wage"
	FieldCheckIn         Field = "check_in"
	FieldWorkedHours     Field = "worked_hours"
	FieldRequestDateFrom Field = "request_date_from"
)

type Op string

const (
	OpEq  Op = "="
	OpNe  Op = "!="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "in"
)

// Condition is a single field/operator/value triple.
type Condition struct {
	Field Field
	Op    Op
	Value any
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// Filter is a conjunction of conditions. The zero value matches everything.
type Filter []Condition

// Where returns a copy of f extended with the given condition.
func (f Filter) Where(field Field, op Op, value any) Filter {
	out := make(Filter, len(f), len(f)+1)
	copy(out, f)
	return append(out, Condition{Field: field, Op: op, Value: value})
}

// InDepartment narrows f to a department when id is set.
func (f Filter) InDepartment(id *int64) Filter {
	if id == nil {
		return f
	}
	return f.Where(FieldDepartmentID, OpEq, *id)
}

// Record is implemented by entities that can be matched in memory.
type Record interface {
	FieldValue(field Field) (any, bool)
}

// Match reports whether rec satisfies every condition of f. A missing
// (NULL) attribute never satisfies a condition.
func (f Filter) Match(rec Record) bool {
	for _, c := range f {
		v, ok := rec.FieldValue(c.Field)
		if !ok {
			return false
		}
		if !c.match(v) {
			return false
		}
	}
	return true
}

func (c Condition) match(v any) bool {
	if c.Op == OpIn {
		rv := reflect.ValueOf(c.Value)
		if rv.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if cmp, ok := compareValues(v, rv.Index(i).Interface()); ok && cmp == 0 {
				return true
			}
		}
		return false
	}

	cmp, ok := compareValues(v, c.Value)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case bool:
		bv, ok := b.(bool)
		if !ok || av == bv {
			return 0, ok
		}
		if !av {
			return -1, true
		}
		return 1, true
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func (e Employee) FieldValue(field Field) (any, bool) {
	switch field {
	case FieldID:
		return e.ID, true
	case FieldActive:
		return e.Active, true
	case FieldDepartmentID:
		return deref(e.DepartmentID)
	}
	return nil, false
}

func (c Contract) FieldValue(field Field) (any, bool) {
	switch field {
	case FieldID:
		return c.ID, true
	case FieldEmployeeID:
		return c.EmployeeID, true
	case FieldState:
		return c.State, true
	case FieldWage:
		if c.Wage == nil {
			return nil, false
		}
		return c.Wage.InexactFloat64(), true
	case FieldDepartmentID:
		return deref(c.DepartmentID)
	}
	return nil, false
}

func (a Attendance) FieldValue(field Field) (any, bool) {
	switch field {
	case FieldID:
		return a.ID, true
	case FieldEmployeeID:
		return a.EmployeeID, true
	case FieldCheckIn:
		return a.CheckIn, true
	case FieldWorkedHours:
		return deref(a.WorkedHours)
	case FieldDepartmentID:
		return deref(a.DepartmentID)
	}
	return nil, false
}

func (l LeaveRequest) FieldValue(field Field) (any, bool) {
	switch field {
	case FieldID:
		return l.ID, true
	case FieldEmployeeID:
		return l.EmployeeID, true
	case FieldState:
		return l.State, true
	case FieldRequestDateFrom:
		return deref(l.RequestDateFrom)
	case FieldDepartmentID:
		return deref(l.DepartmentID)
	}
	return nil, false
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
