package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/currency"
)

// Settings configures the calendar service.
type Settings struct {
	// Location decides which calendar day a timestamp belongs to
	Location *time.Location
	Rates    attendance.DeductionRates
	Currency currency.Formatter
}

type CalendarServiceImpl struct {
	attendance.RecordRepository
	employee.EmployeeRepository
	settings Settings
	now      func() time.Time
}

// NewCalendarService builds the service. now is the only clock the service
// reads; cmd passes time.Now.
func NewCalendarService(
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	settings Settings,
	now func() time.Time,
) attendance.CalendarService {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &CalendarServiceImpl{
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
		settings:           settings,
		now:                now,
	}
}

// MonthResult bundles the statistics and grid of one month.
type MonthResult struct {
	Month      attendance.MonthKey
	Statistics attendance.MonthlyStatistics
	Grid       attendance.CalendarGrid
}

// ComputeMonth aggregates records and builds the grid for month.
func ComputeMonth(records []attendance.Record, month attendance.MonthKey, rates attendance.DeductionRates) (MonthResult, error) {
	stats, err := Aggregate(records, month, rates)
	if err != nil {
		return MonthResult{}, err
	}

	inMonth := make([]attendance.Record, 0, len(records))
	for _, record := range records {
		if month.Contains(record.OccurredOn) {
			inMonth = append(inMonth, record)
		}
	}

	grid, err := BuildGrid(month, IndexByDate(inMonth))
	if err != nil {
		return MonthResult{}, err
	}

	return MonthResult{Month: month, Statistics: stats, Grid: grid}, nil
}

// ToStatisticsResponse maps statistics to the wire format.
func ToStatisticsResponse(stats attendance.MonthlyStatistics, formatter currency.Formatter) attendance.StatisticsResponse {
	return attendance.StatisticsResponse{
		PresentDays:             stats.PresentDays,
		AbsentDays:              stats.AbsentDays,
		WarningDays:             stats.WarningDays,
		WorkingDays:             stats.WorkingDays,
		TotalDeduction:          stats.TotalDeduction,
		TotalDeductionFormatted: formatter.Format(stats.TotalDeduction),
	}
}

func (s *CalendarServiceImpl) toResponse(result MonthResult, emp *employee.Employee) attendance.MonthlyCalendarResponse {
	resp := attendance.MonthlyCalendarResponse{
		Month:      result.Month.String(),
		Statistics: ToStatisticsResponse(result.Statistics, s.settings.Currency),
		Columns:    attendance.GridColumns,
		Cells:      attendance.ToCellResponses(result.Grid),
	}
	if emp != nil {
		resp.Employee = &attendance.EmployeeInfo{
			Username:    emp.Username,
			DisplayName: emp.DisplayName,
			Designation: emp.Designation,
		}
	}
	return resp
}

// resolveMonth parses a YYYY-MM selector, defaulting to the current month.
func (s *CalendarServiceImpl) resolveMonth(month string) (attendance.MonthKey, error) {
	if month == "" {
		return attendance.MonthKeyOf(s.now().In(s.settings.Location)), nil
	}
	return attendance.ParseMonthKey(month)
}

// GetMonthlyCalendar implements attendance.CalendarService.
func (s *CalendarServiceImpl) GetMonthlyCalendar(ctx context.Context, req attendance.MonthlyCalendarRequest) (attendance.MonthlyCalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	month, err := s.resolveMonth(req.Month)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByUsername(ctx, req.EmployeeUsername)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MonthlyCalendarResponse{}, err
		}
		return attendance.MonthlyCalendarResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	start := month.Start(s.settings.Location)
	end := start.AddDate(0, 1, 0)

	records, err := s.RecordRepository.ListByEmployee(ctx, emp.Username, start, end)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	result, err := ComputeMonth(records, month, s.settings.Rates)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	return s.toResponse(result, &emp), nil
}

// ComputeMonthlyCalendar implements attendance.CalendarService.
func (s *CalendarServiceImpl) ComputeMonthlyCalendar(ctx context.Context, req attendance.ComputeCalendarRequest) (attendance.MonthlyCalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	month, err := s.resolveMonth(req.Month)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	records, err := attendance.ParseRecords(req.EmployeeRecords(), s.settings.Location)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	rates := s.settings.Rates
	if req.DeductionPerAbsentDay != nil {
		rates.PerAbsentDay = *req.DeductionPerAbsentDay
	}
	if req.DeductionPerWarningDay != nil {
		rates.PerWarningDay = *req.DeductionPerWarningDay
	}

	result, err := ComputeMonth(records, month, rates)
	if err != nil {
		return attendance.MonthlyCalendarResponse{}, err
	}

	return s.toResponse(result, nil), nil
}

// GetDailyRoster implements attendance.CalendarService.
func (s *CalendarServiceImpl) GetDailyRoster(ctx context.Context, req attendance.DailyRosterRequest) (attendance.DailyRosterResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DailyRosterResponse{}, err
	}

	loc := s.settings.Location
	var day time.Time
	if req.Date == "" {
		nowLocal := s.now().In(loc)
		day = time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation(attendance.DateLayout, req.Date, loc)
		if err != nil {
			return attendance.DailyRosterResponse{}, fmt.Errorf("%w: date %q must be in YYYY-MM-DD format", attendance.ErrInvalidArgument, req.Date)
		}
		day = parsed
	}

	roster, err := s.EmployeeRepository.ListRoster(ctx)
	if err != nil {
		return attendance.DailyRosterResponse{}, fmt.Errorf("failed to list roster: %w", err)
	}

	records, err := s.RecordRepository.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return attendance.DailyRosterResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	statuses := DailyRosterStatus(roster, IndexByEmployee(records), day)

	employees := make([]attendance.EmployeeDayStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		item := attendance.EmployeeDayStatusResponse{
			Username:       st.EmployeeUsername,
			DisplayName:    st.DisplayName,
			Designation:    st.Designation,
			Classification: string(st.Classification),
		}
		if st.Remark != "" {
			remark := st.Remark
			item.Remark = &remark
		}
		employees = append(employees, item)
	}

	return attendance.DailyRosterResponse{
		Date:      day.Format(attendance.DateLayout),
		Summary:   SummarizeRoster(statuses),
		Employees: employees,
	}, nil
}
