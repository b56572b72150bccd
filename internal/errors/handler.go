package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"sheetviz/internal/chart"
	"sheetviz/internal/sheet"
)

// ErrorHandler provides centralized error handling: every engine error
// kind maps to a stable (status, code) pair so the transport layer
// never pattern-matches on message text.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to an APIError response and renders it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, NewErrorResponse(h.toAPIError(err)))
}

// toAPIError maps engine sentinel errors onto the error taxonomy.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "The request took too long to process and was cancelled")
	case errors.Is(err, sheet.ErrNotFound):
		return New(http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, sheet.ErrUnsupportedFormat):
		return New(http.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error())
	case errors.Is(err, sheet.ErrEmptySheet):
		return New(http.StatusUnprocessableEntity, "EMPTY_SHEET", err.Error())
	case errors.Is(err, chart.ErrEmptyResult):
		return New(http.StatusUnprocessableEntity, "EMPTY_RESULT", err.Error())
	case errors.Is(err, chart.ErrInvalidFilter):
		return New(http.StatusBadRequest, "INVALID_FILTER", err.Error())
	case errors.Is(err, chart.ErrMissingMeasure):
		return New(http.StatusBadRequest, "MISSING_MEASURE", err.Error())
	case errors.Is(err, chart.ErrInvalidRequest), errors.Is(err, chart.ErrUnsupportedChartKind):
		return New(http.StatusBadRequest, "INVALID_CHART_REQUEST", err.Error())
	case errors.Is(err, chart.ErrNonNumericMeasure):
		return New(http.StatusUnprocessableEntity, "NON_NUMERIC_MEASURE", err.Error())
	default:
		return ErrInternalServer
	}
}
