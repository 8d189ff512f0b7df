package postgresql

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

// Column maps of the analytics queries. department_id always resolves to the
// owning employee's column, which is how the employee -> department join is
// expressed for contracts, attendance and leave requests.
var (
	employeeColumns = map[analytics.Field]string{
		analytics.FieldID:           "e.id",
		analytics.FieldActive:       "e.active",
		analytics.FieldDepartmentID: "e.department_id",
	}
	contractColumns = map[analytics.Field]string{
		analytics.FieldID:           "c.id",
		analytics.FieldEmployeeID:   "c.employee_id",
		analytics.FieldState:        "c.state",
		analytics.FieldWage:         "c.wage",
		analytics.FieldDepartmentID: "e.department_id",
	}
	attendanceColumns = map[analytics.Field]string{
		analytics.FieldID:           "a.id",
		analytics.FieldEmployeeID:   "a.employee_id",
		analytics.FieldCheckIn:      "a.check_in",
		analytics.FieldWorkedHours:  "a.worked_hours",
		analytics.FieldDepartmentID: "e.department_id",
	}
	leaveColumns = map[analytics.Field]string{
		analytics.FieldID:              "l.id",
		analytics.FieldEmployeeID:      "l.employee_id",
		analytics.FieldState:           "l.state",
		analytics.FieldRequestDateFrom: "l.request_date_from",
		analytics.FieldDepartmentID:    "e.department_id",
	}
)

var sqlOperators = map[analytics.Op]string{
	analytics.OpEq:  "=",
	analytics.OpNe:  "<>",
	analytics.OpGt:  ">",
	analytics.OpGte: ">=",
	analytics.OpLt:  "<",
	analytics.OpLte: "<=",
}

// buildWhere renders filter as a WHERE clause with positional arguments
// starting at $argIndex. An empty filter renders as an empty string.
func buildWhere(filter analytics.Filter, columns map[analytics.Field]string, argIndex int) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(filter))
	args := make([]interface{}, 0, len(filter))

	for _, cond := range filter {
		column, ok := columns[cond.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter field %q", cond.Field)
		}

		if cond.Op == analytics.OpIn {
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", column, argIndex))
		} else {
			op, ok := sqlOperators[cond.Op]
			if !ok {
				return "", nil, fmt.Errorf("unsupported filter operator %q", cond.Op)
			}
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, op, argIndex))
		}
		args = append(args, cond.Value)
		argIndex++
	}

	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}
