package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetviz/internal/chart"
	"sheetviz/internal/sheet"
)

func TestToAPIError(t *testing.T) {
	h := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "passthrough api error",
			err:        New(http.StatusTeapot, "TEAPOT", "short and stout"),
			wantStatus: http.StatusTeapot,
			wantCode:   "TEAPOT",
		},
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "REQUEST_TIMEOUT",
		},
		{
			name:       "source not found",
			err:        fmt.Errorf("%w: sales.csv", sheet.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unsupported format",
			err:        fmt.Errorf("%w: .xls", sheet.ErrUnsupportedFormat),
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNSUPPORTED_FORMAT",
		},
		{
			name:       "empty sheet",
			err:        sheet.ErrEmptySheet,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EMPTY_SHEET",
		},
		{
			name:       "empty filter result",
			err:        chart.ErrEmptyResult,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "EMPTY_RESULT",
		},
		{
			name:       "invalid filter",
			err:        fmt.Errorf("%w: like", chart.ErrInvalidFilter),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FILTER",
		},
		{
			name:       "missing measure",
			err:        chart.ErrMissingMeasure,
			wantStatus: http.StatusBadRequest,
			wantCode:   "MISSING_MEASURE",
		},
		{
			name:       "invalid chart request",
			err:        fmt.Errorf("%w: scatter", chart.ErrInvalidRequest),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_CHART_REQUEST",
		},
		{
			name:       "non numeric measure",
			err:        chart.ErrNonNumericMeasure,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "NON_NUMERIC_MEASURE",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := h.toAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestHandleErrorRendersEnvelope(t *testing.T) {
	h := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sheets/x.csv/structure", nil)
	h.HandleError(rec, req, fmt.Errorf("%w: x.csv", sheet.ErrNotFound))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}

func TestHandleErrorNil(t *testing.T) {
	h := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Empty(t, rec.Body.String())
}
