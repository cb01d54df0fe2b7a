package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

var classificationMarks = map[string]string{
	string(attendance.ClassificationPresent): "P",
	string(attendance.ClassificationWarning): "W",
	string(attendance.ClassificationAbsent):  "A",
}

func renderCalendar(w io.Writer, resp attendance.MonthlyCalendarResponse, employeeLabel string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Month\t%s\n", resp.Month)
	if employeeLabel != "" {
		fmt.Fprintf(tw, "Employee\t%s\n", employeeLabel)
	}
	stats := resp.Statistics
	fmt.Fprintf(tw, "Working days\t%d\n", stats.WorkingDays)
	fmt.Fprintf(tw, "Present\t%d\n", stats.PresentDays)
	fmt.Fprintf(tw, "Warning\t%d\n", stats.WarningDays)
	fmt.Fprintf(tw, "Absent\t%d\n", stats.AbsentDays)
	fmt.Fprintf(tw, "Deduction\t%s\n", stats.TotalDeductionFormatted)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 4, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Sun\tMon\tTue\tWed\tThu\tFri\tSat\t")
	for row := 0; row*resp.Columns < len(resp.Cells); row++ {
		cells := make([]string, 0, resp.Columns)
		for _, cell := range resp.Cells[row*resp.Columns : (row+1)*resp.Columns] {
			cells = append(cells, cellLabel(cell))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "\nP present  W warning  A absent")
	return err
}

func cellLabel(cell attendance.CalendarCellResponse) string {
	if cell.DayNumber == nil {
		return ""
	}
	return strconv.Itoa(*cell.DayNumber) + classificationMarks[cell.Classification]
}

func renderRoster(w io.Writer, resp attendance.DailyRosterResponse) error {
	fmt.Fprintf(w, "Date %s: %d present, %d warning, %d absent\n\n",
		resp.Date, resp.Summary.Present, resp.Summary.Warning, resp.Summary.Absent)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tNAME\tDESIGNATION\tSTATUS\tREMARK")
	for _, e := range resp.Employees {
		remark := "-"
		if e.Remark != nil {
			remark = *e.Remark
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Username, e.DisplayName, e.Designation, e.Classification, remark)
	}
	return tw.Flush()
}
