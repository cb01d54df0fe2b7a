package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_DeductionIsJSONNumber(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, attendance.MonthlyCalendarResponse{
		Month: "2024-03",
		Statistics: attendance.StatisticsResponse{
			AbsentDays:              24,
			TotalDeduction:          decimal.RequireFromString("24500.50"),
			TotalDeductionFormatted: "₹24,500.50",
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_deduction":24500.5`)
	assert.Contains(t, w.Body.String(), `"total_deduction_formatted":"₹24,500.50"`)

	var body struct {
		Data struct {
			Statistics struct {
				AbsentDays     int         `json:"absent_days"`
				TotalDeduction json.Number `json:"total_deduction"`
			} `json:"statistics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 24, body.Data.Statistics.AbsentDays)
	assert.Equal(t, json.Number("24500.5"), body.Data.Statistics.TotalDeduction)
}

func TestHandleError_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "employee", Message: "required"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"invalid argument", fmt.Errorf("%w: bad date", attendance.ErrInvalidArgument), http.StatusBadRequest, CodeBadRequest},
		{"not found", employee.ErrEmployeeNotFound, http.StatusNotFound, CodeNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
