package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
)

// maxComputeBody caps the inline record payload of ComputeCalendar.
const maxComputeBody = 5 << 20

type AttendanceHandler interface {
	GetCalendar(w http.ResponseWriter, r *http.Request)
	ComputeCalendar(w http.ResponseWriter, r *http.Request)
	GetRoster(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	calendarService attendance.CalendarService
}

func NewAttendanceHandler(calendarService attendance.CalendarService) AttendanceHandler {
	return &attendanceHandlerImpl{
		calendarService: calendarService,
	}
}

// GetCalendar handles GET /attendance/calendar
func (h *attendanceHandlerImpl) GetCalendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.MonthlyCalendarRequest{
		EmployeeUsername: query.Get("employee"),
		Month:            query.Get("month"),
	}

	result, err := h.calendarService.GetMonthlyCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputeCalendar handles POST /attendance/calendar/compute
func (h *attendanceHandlerImpl) ComputeCalendar(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeCalendarRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxComputeBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode compute calendar request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.calendarService.ComputeMonthlyCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRoster handles GET /attendance/roster
func (h *attendanceHandlerImpl) GetRoster(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyRosterRequest{
		Date: r.URL.Query().Get("date"),
	}

	result, err := h.calendarService.GetDailyRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
