package report

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet  = "Summary"
	CalendarSheet = "Calendar"
)

var weekdayHeaders = []interface{}{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var classificationFills = map[string]string{
	string(attendance.ClassificationPresent): "#C6EFCE",
	string(attendance.ClassificationWarning): "#FFEB9C",
	string(attendance.ClassificationAbsent):  "#FFC7CE",
}

// WriteWorkbook renders a summary sheet and one calendar block per employee.
func WriteWorkbook(w io.Writer, rpt report.MonthlyAttendanceReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(CalendarSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := writeSummary(f, rpt, headerStyle); err != nil {
		return err
	}
	if err := writeCalendars(f, rpt, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeSummary(f *excelize.File, rpt report.MonthlyAttendanceReport, headerStyle int) error {
	title := fmt.Sprintf("Attendance report %s (%s to %s), %d working days",
		rpt.Month, rpt.PeriodStart, rpt.PeriodEnd, rpt.WorkingDays)
	if err := f.SetCellValue(SummarySheet, "A1", title); err != nil {
		return err
	}

	header := []interface{}{"Username", "Name", "Designation", "Present", "Warning", "Absent", "Working days", "Deduction", "Deduction (formatted)"}
	if err := f.SetSheetRow(SummarySheet, "A3", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A3", "I3", headerStyle); err != nil {
		return err
	}

	for i, emp := range rpt.Employees {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		stats := emp.Statistics
		row := []interface{}{
			emp.Employee.Username,
			emp.Employee.DisplayName,
			emp.Employee.Designation,
			stats.PresentDays,
			stats.WarningDays,
			stats.AbsentDays,
			stats.WorkingDays,
			stats.TotalDeduction.InexactFloat64(),
			stats.TotalDeductionFormatted,
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "C", 20); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "D", "I", 14)
}

// calendarBlockRows is the name row, the weekday header and six week rows, plus a spacer.
const calendarBlockRows = 2 + attendance.GridRows + 1

func writeCalendars(f *excelize.File, rpt report.MonthlyAttendanceReport, headerStyle int) error {
	fills := make(map[string]int, len(classificationFills))
	for classification, color := range classificationFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return err
		}
		fills[classification] = style
	}

	for i, emp := range rpt.Employees {
		top := i*calendarBlockRows + 1

		name := fmt.Sprintf("%s (%s)", emp.Employee.DisplayName, emp.Employee.Username)
		if err := f.SetCellValue(CalendarSheet, fmt.Sprintf("A%d", top), name); err != nil {
			return err
		}
		if err := f.SetSheetRow(CalendarSheet, fmt.Sprintf("A%d", top+1), &weekdayHeaders); err != nil {
			return err
		}
		if err := f.SetCellStyle(CalendarSheet, fmt.Sprintf("A%d", top+1), fmt.Sprintf("G%d", top+1), headerStyle); err != nil {
			return err
		}

		for p, cell := range emp.Cells {
			if cell.DayNumber == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(p%attendance.GridColumns+1, top+2+p/attendance.GridColumns)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(CalendarSheet, ref, *cell.DayNumber); err != nil {
				return err
			}
			if style, ok := fills[cell.Classification]; ok {
				if err := f.SetCellStyle(CalendarSheet, ref, ref, style); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
