package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/calendar"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/service/file"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	recordRepo   attendance.RecordRepository
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	settings     attendanceService.Settings
	now          func() time.Time
}

func NewReportService(
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	settings attendanceService.Settings,
	now func() time.Time,
) report.ReportService {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &ReportServiceImpl{
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
		fileService:  fileService,
		settings:     settings,
		now:          now,
	}
}

// GenerateMonthlyAttendanceReport generates the monthly attendance report
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	month := attendance.MonthKeyOf(s.now().In(s.settings.Location))
	if req.Month != "" {
		parsed, err := attendance.ParseMonthKey(req.Month)
		if err != nil {
			return report.MonthlyAttendanceReport{}, err
		}
		month = parsed
	}

	workingDays, err := calendar.WorkingDaysInMonth(month.Year, month.MonthIndex)
	if err != nil {
		return report.MonthlyAttendanceReport{}, fmt.Errorf("%w: %w", attendance.ErrInvalidArgument, err)
	}

	// Calculate period dates
	periodStart := month.Start(s.settings.Location)
	periodEnd := periodStart.AddDate(0, 1, 0)

	var (
		roster  []employee.Employee
		records []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		roster, err = s.employeeRepo.ListRoster(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list roster: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = s.recordRepo.ListBetween(gCtx, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	// Keep each employee's records in storage order
	byEmployee := make(map[string][]attendance.Record, len(roster))
	for _, record := range records {
		byEmployee[record.EmployeeUsername] = append(byEmployee[record.EmployeeUsername], record)
	}

	employees := make([]report.MonthlyAttendanceEmployee, 0, len(roster))
	for _, emp := range roster {
		result, err := attendanceService.ComputeMonth(byEmployee[emp.Username], month, s.settings.Rates)
		if err != nil {
			return report.MonthlyAttendanceReport{}, err
		}

		employees = append(employees, report.MonthlyAttendanceEmployee{
			Employee: attendance.EmployeeInfo{
				Username:    emp.Username,
				DisplayName: emp.DisplayName,
				Designation: emp.Designation,
			},
			Statistics: attendanceService.ToStatisticsResponse(result.Statistics, s.settings.Currency),
			Cells:      attendance.ToCellResponses(result.Grid),
		})
	}

	return report.MonthlyAttendanceReport{
		Month:       month.String(),
		PeriodStart: periodStart.Format(attendance.DateLayout),
		PeriodEnd:   periodEnd.AddDate(0, 0, -1).Format(attendance.DateLayout),
		WorkingDays: workingDays,
		GeneratedAt: s.now().In(s.settings.Location).Format(time.RFC3339),
		Employees:   employees,
	}, nil
}

// ExportMonthlyAttendanceReport stores the report as an xlsx workbook
func (s *ReportServiceImpl) ExportMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.ExportReportResponse, error) {
	result, err := s.GenerateMonthlyAttendanceReport(ctx, req)
	if err != nil {
		return report.ExportReportResponse{}, err
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, result); err != nil {
		return report.ExportReportResponse{}, fmt.Errorf("failed to render attendance workbook: %w", err)
	}

	path, err := s.fileService.UploadAttendanceReport(ctx, result.Month, &buf)
	if err != nil {
		return report.ExportReportResponse{}, err
	}

	return report.ExportReportResponse{
		Month: result.Month,
		Path:  path,
		URL:   s.fileService.GetFileURL(path),
	}, nil
}
