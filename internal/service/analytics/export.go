package analytics

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetKPI        = "KPI Distribution"
	sheetAttendance = "Attendance Trend"
	sheetSalary     = "Salary Distribution"
	sheetLeave      = "Leave Trend"
)

// ExportMeta describes the filter the exported data was computed for.
type ExportMeta struct {
	Department  string
	Range       analytics.DateRange
	GeneratedAt time.Time
}

// WriteXLSX renders the dashboard data as a workbook with one sheet per series.
func WriteXLSX(w io.Writer, resp *analytics.AnalyticsResponse, meta ExportMeta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	department := meta.Department
	if department == "" {
		department = "All departments"
	}

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Department", department},
		{"Start date", meta.Range.Start.Format(time.DateOnly)},
		{"End date", meta.Range.End.Format(time.DateOnly)},
		{"Generated at", meta.GeneratedAt.Format(time.RFC3339)},
		{"Total employees", resp.TotalEmployees},
		{"Turnover rate (%)", resp.TurnoverRate},
		{"Average salary", resp.AvgSalary},
		{"Average KPI", resp.KPIAverage},
	}
	if err := writeTable(f, sheetSummary, summary, headerStyle); err != nil {
		return err
	}

	kpi := [][]interface{}{{"Score range", "Employees"}}
	for _, b := range resp.KPIDistribution {
		kpi = append(kpi, []interface{}{b.ScoreRange, b.Count})
	}

	attendance := [][]interface{}{{"Date", "Average worked hours"}}
	for _, p := range resp.AttendanceTrends {
		attendance = append(attendance, []interface{}{p.Date, p.WorkedHours})
	}

	salary := [][]interface{}{{"Department", "Total salary"}}
	for _, s := range resp.SalaryDistribution {
		salary = append(salary, []interface{}{s.Department, s.TotalSalary})
	}

	leave := [][]interface{}{{"Month", "Validated leaves"}}
	for _, l := range resp.LeaveTrends {
		leave = append(leave, []interface{}{l.Month, l.Count})
	}

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{sheetKPI, kpi},
		{sheetAttendance, attendance},
		{sheetSalary, salary},
		{sheetLeave, leave},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}
		if err := writeTable(f, sheet.name, sheet.rows, headerStyle); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeTable writes rows starting at A1; the first row is the header.
func writeTable(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "B", 24)
}
