package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"sheetviz/internal/config"
	apierrors "sheetviz/internal/errors"
	v1 "sheetviz/pkg/contracts/api/v1"
)

type contextKey string

const filenameKey contextKey = "filename"

// SheetHandler serves the structure preview and chart build endpoints.
type SheetHandler struct {
	service      SheetService
	errorHandler *apierrors.ErrorHandler
	validator    *validator.Validate
	data         config.DataConfig
}

// NewSheetHandler creates a sheet handler.
func NewSheetHandler(service SheetService, errorHandler *apierrors.ErrorHandler, data config.DataConfig) *SheetHandler {
	return &SheetHandler{
		service:      service,
		errorHandler: errorHandler,
		validator:    validator.New(),
		data:         data,
	}
}

// Routes returns the sheet endpoints, mounted under /api/sheets.
func (h *SheetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{filename}", func(r chi.Router) {
		r.Use(h.filenameCtx)
		r.Get("/structure", h.handleStructure)
		r.Post("/chart", h.handleChart)
	})
	return r
}

// filenameCtx validates the filename path segment and stores it in the
// request context. Traversal attempts are rejected before the service
// ever touches the filesystem.
func (h *SheetHandler) filenameCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation("filename", "must be a plain file name")))
			return
		}
		ctx := context.WithValue(r.Context(), filenameKey, filename)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func filenameFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(filenameKey).(string)
	return v
}

// handleStructure serves GET /api/sheets/{filename}/structure.
// max_rows is optional; it defaults and is capped per configuration.
func (h *SheetHandler) handleStructure(w http.ResponseWriter, r *http.Request) {
	maxRows := h.data.DefaultPreviewRows
	if raw := r.URL.Query().Get("max_rows"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation("max_rows", "must be a positive integer")))
			return
		}
		if n > h.data.MaxPreviewRows {
			n = h.data.MaxPreviewRows
		}
		maxRows = n
	}

	resp, err := h.service.GetStructure(r.Context(), filenameFromCtx(r.Context()), maxRows)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	renderData(w, r, resp)
}

// handleChart serves POST /api/sheets/{filename}/chart.
func (h *SheetHandler) handleChart(w http.ResponseWriter, r *http.Request) {
	var dto v1.ChartRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInvalidRequest))
		return
	}

	if err := h.validator.Struct(dto); err != nil {
		render.Render(w, r, apierrors.NewErrorResponse(validationErrors(err)))
		return
	}

	resp, err := h.service.BuildChart(r.Context(), filenameFromCtx(r.Context()), dto)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	renderData(w, r, resp)
}

// validationErrors converts validator failures into the field-level
// error payload.
func validationErrors(err error) *apierrors.APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.ErrValidationFailed
	}

	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed validation: " + fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(fields)
}

// dataResponse is the success envelope shared by all endpoints.
type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func renderData(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse{Success: true, Data: data})
}
