package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalendarService struct {
	gotCalendar attendance.MonthlyCalendarRequest
	gotCompute  attendance.ComputeCalendarRequest
	gotRoster   attendance.DailyRosterRequest
	err         error
}

func (s *stubCalendarService) GetMonthlyCalendar(ctx context.Context, req attendance.MonthlyCalendarRequest) (attendance.MonthlyCalendarResponse, error) {
	s.gotCalendar = req
	if s.err != nil {
		return attendance.MonthlyCalendarResponse{}, s.err
	}
	return attendance.MonthlyCalendarResponse{Month: req.Month, Columns: attendance.GridColumns}, nil
}

func (s *stubCalendarService) ComputeMonthlyCalendar(ctx context.Context, req attendance.ComputeCalendarRequest) (attendance.MonthlyCalendarResponse, error) {
	s.gotCompute = req
	if s.err != nil {
		return attendance.MonthlyCalendarResponse{}, s.err
	}
	return attendance.MonthlyCalendarResponse{Month: req.Month, Columns: attendance.GridColumns}, nil
}

func (s *stubCalendarService) GetDailyRoster(ctx context.Context, req attendance.DailyRosterRequest) (attendance.DailyRosterResponse, error) {
	s.gotRoster = req
	if s.err != nil {
		return attendance.DailyRosterResponse{}, s.err
	}
	return attendance.DailyRosterResponse{Date: req.Date, Summary: attendance.RosterSummary{Present: 2, Absent: 1}}, nil
}

type stubReportService struct {
	gotMonth string
	err      error
}

func (s *stubReportService) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	s.gotMonth = req.Month
	if s.err != nil {
		return report.MonthlyAttendanceReport{}, s.err
	}
	return report.MonthlyAttendanceReport{Month: req.Month, WorkingDays: 26}, nil
}

func (s *stubReportService) ExportMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.ExportReportResponse, error) {
	s.gotMonth = req.Month
	if s.err != nil {
		return report.ExportReportResponse{}, s.err
	}
	return report.ExportReportResponse{Month: req.Month, Path: "reports/attendance/2024-03/x.xlsx", URL: "/uploads/reports/attendance/2024-03/x.xlsx"}, nil
}

func newTestRouter(t *testing.T, calendar *stubCalendarService, reports *stubReportService, uploads string) http.Handler {
	t.Helper()
	return NewRouter(
		RouterOptions{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}, UploadsPath: uploads},
		NewAttendanceHandler(calendar),
		NewReportHandler(reports),
	)
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestAttendanceHandler_GetCalendar(t *testing.T) {
	calendar := &stubCalendarService{}
	router := newTestRouter(t, calendar, &stubReportService{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee=asha&month=2024-03", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, attendance.MonthlyCalendarRequest{EmployeeUsername: "asha", Month: "2024-03"}, calendar.gotCalendar)

	resp := decodeBody(t, w.Body)
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "2024-03", data["month"])
	assert.Equal(t, float64(7), data["columns"])
}

func TestAttendanceHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    validator.ValidationErrors{{Field: "employee", Message: "employee is required"}},
			status: http.StatusUnprocessableEntity,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "invalid argument",
			err:    fmt.Errorf("%w: month index 12 is outside 0..11", attendance.ErrInvalidArgument),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "unknown employee",
			err:    employee.ErrEmployeeNotFound,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "storage failure",
			err:    fmt.Errorf("failed to list attendance records: %w", io.ErrUnexpectedEOF),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubCalendarService{err: tt.err}, &stubReportService{}, "")

			req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/calendar?employee=asha", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeBody(t, w.Body)
			assert.False(t, resp["success"].(bool))
			assert.Equal(t, tt.code, resp["error"].(map[string]interface{})["code"])
		})
	}
}

func TestAttendanceHandler_ComputeCalendar(t *testing.T) {
	calendar := &stubCalendarService{}
	router := newTestRouter(t, calendar, &stubReportService{}, "")

	body := []byte(`{"employee":"asha","month":"2024-03","records":[{"employee_username":"asha","occurred_at":"2024-03-05","remark":"Present"}],"deduction_per_absent_day":"250"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/calendar/compute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asha", calendar.gotCompute.EmployeeUsername)
	require.Len(t, calendar.gotCompute.Records, 1)
	assert.Equal(t, "asha", calendar.gotCompute.Records[0].EmployeeUsername)
	require.NotNil(t, calendar.gotCompute.Records[0].Remark)
	assert.Equal(t, "Present", *calendar.gotCompute.Records[0].Remark)
	require.NotNil(t, calendar.gotCompute.DeductionPerAbsentDay)
	assert.Equal(t, "250", calendar.gotCompute.DeductionPerAbsentDay.String())
	assert.Nil(t, calendar.gotCompute.DeductionPerWarningDay)
}

func TestAttendanceHandler_ComputeCalendar_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, &stubCalendarService{}, &stubReportService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/calendar/compute", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_ComputeCalendar_WrongContentType(t *testing.T) {
	router := newTestRouter(t, &stubCalendarService{}, &stubReportService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/calendar/compute", bytes.NewReader([]byte("month: 2024-03")))
	req.Header.Set("Content-Type", "text/yaml")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAttendanceHandler_GetRoster(t *testing.T) {
	calendar := &stubCalendarService{}
	router := newTestRouter(t, calendar, &stubReportService{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/roster?date=2024-03-05", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-05", calendar.gotRoster.Date)

	data := decodeBody(t, w.Body)["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["present"])
	assert.Equal(t, float64(1), summary["absent"])
}

func TestReportHandler_Routes(t *testing.T) {
	reports := &stubReportService{}
	router := newTestRouter(t, &stubCalendarService{}, reports, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/attendance?month=2024-03", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03", reports.gotMonth)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/reports/attendance/export?month=2024-04", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2024-04", reports.gotMonth)

	data := decodeBody(t, w.Body)["data"].(map[string]interface{})
	assert.Equal(t, "/uploads/reports/attendance/2024-03/x.xlsx", data["url"])
}

func TestRouter_HeartbeatAndUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "reports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reports", "hello.txt"), []byte("hello"), 0o644))

	router := newTestRouter(t, &stubCalendarService{}, &stubReportService{}, dir)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/uploads/reports/hello.txt", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
}
