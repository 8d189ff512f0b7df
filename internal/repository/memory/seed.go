package memory

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// Seed fills store with a small deterministic company for the demo mode:
// three departments, a dozen employees (two of them inactive), open and
// closed contracts, sixty days of weekday attendance and some leaves.
func Seed(store *RecordStore, now time.Time) {
	departments := []string{"Engineering", "Finance", "People"}
	for i, name := range departments {
		store.AddDepartment(analytics.Department{ID: int64(i + 1), Name: name})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		contractID   int64
		attendanceID int64
		leaveID      int64
	)
	for i := 1; i <= 12; i++ {
		empID := int64(i)
		deptID := int64((i-1)%len(departments) + 1)
		active := i%6 != 0

		store.AddEmployee(analytics.Employee{
			ID:           empID,
			Name:         fmt.Sprintf("Employee %02d", i),
			Active:       active,
			DepartmentID: &deptID,
		})

		wage := decimal.NewFromInt(int64(4000 + 250*i))
		state := analytics.ContractStateOpen
		if !active {
			state = "close"
		}
		contractID++
		store.AddContract(analytics.Contract{ID: contractID, EmployeeID: empID, State: state, Wage: &wage})

		if !active {
			continue
		}

		for d := 60; d >= 1; d-- {
			day := today.AddDate(0, 0, -d)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			// Every employee skips a different weekday pattern
			if (d+i)%(i%4+5) == 0 {
				continue
			}
			hours := 7.5 + float64((d+i)%4)*0.5
			attendanceID++
			store.AddAttendance(analytics.Attendance{
				ID:          attendanceID,
				EmployeeID:  empID,
				CheckIn:     day.Add(8*time.Hour + time.Duration(i)*time.Minute),
				WorkedHours: &hours,
			})
		}

		for l := 0; l < i%5; l++ {
			from := today.AddDate(0, 0, -(l*17 + i))
			leaveID++
			store.AddLeave(analytics.LeaveRequest{
				ID:              leaveID,
				EmployeeID:      empID,
				State:           analytics.LeaveStateValidate,
				RequestDateFrom: &from,
			})
		}
	}
}
