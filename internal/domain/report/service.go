package report

import "context"

type ReportService interface {
	GenerateMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (MonthlyAttendanceReport, error)

	// ExportMonthlyAttendanceReport renders the report as a workbook and stores it
	ExportMonthlyAttendanceReport(ctx context.Context, req MonthlyAttendanceReportRequest) (ExportReportResponse, error)
}
