// Package services contains the business logic between the HTTP
// transport and the sheet/chart engine: request orchestration, source
// path resolution and operational logging.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"sheetviz/internal/chart"
	"sheetviz/internal/config"
	"sheetviz/internal/sheet"
	v1 "sheetviz/pkg/contracts/api/v1"
)

// SheetService serves structure previews and chart builds over sheet
// sources stored in the configured data directory.
type SheetService struct {
	dataDir string
	logger  *slog.Logger
}

// NewSheetService creates a sheet service rooted at cfg.Dir.
func NewSheetService(cfg config.DataConfig, logger *slog.Logger) *SheetService {
	return &SheetService{
		dataDir: cfg.Dir,
		logger:  logger.With(slog.String("service", "sheet")),
	}
}

// GetStructure loads every sheet of the named source and returns its
// bounded structure preview. maxRows is already validated and capped by
// the handler.
func (s *SheetService) GetStructure(ctx context.Context, filename string, maxRows int) (*v1.StructureResponse, error) {
	path, err := s.resolvePath(filename)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	previews, err := sheet.Preview(path, maxRows)
	if err != nil {
		return nil, err
	}

	resp := &v1.StructureResponse{Sheets: make([]v1.SheetStructure, 0, len(previews))}
	for _, p := range previews {
		resp.Sheets = append(resp.Sheets, toSheetStructure(p))
	}

	s.logger.InfoContext(ctx, "structure preview built",
		slog.String("filename", filename),
		slog.Int("sheets", len(resp.Sheets)),
		slog.Int("max_rows", maxRows),
		slog.Duration("duration", time.Since(start)))

	return resp, nil
}

// BuildChart loads one sheet of the named source and runs the chart
// pipeline over it. Workbook sources require dto.SheetName; CSV sources
// ignore it.
func (s *SheetService) BuildChart(ctx context.Context, filename string, dto v1.ChartRequest) (*v1.ChartResponse, error) {
	req, err := chart.ParseRequest(dto)
	if err != nil {
		return nil, err
	}

	path, err := s.resolvePath(filename)
	if err != nil {
		return nil, err
	}
	if sheet.IsWorkbook(path) && req.SheetName == "" {
		return nil, fmt.Errorf("%w: sheet_name is required for workbook sources", chart.ErrInvalidRequest)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := sheet.LoadOne(path, req.SheetName)
	if err != nil {
		return nil, err
	}

	result, err := chart.Build(src, req)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "chart built",
		slog.String("filename", filename),
		slog.String("sheet", src.Name),
		slog.String("chart_type", result.ChartType),
		slog.String("x_field", result.XField),
		slog.Int("series", len(result.Series)),
		slog.Duration("duration", time.Since(start)))

	return &v1.ChartResponse{
		ChartType: result.ChartType,
		XField:    result.XField,
		YFields:   result.YFields,
		Series:    result.Series,
		VegaSpec:  result.VegaSpec,
	}, nil
}

// resolvePath joins the filename onto the data directory and rejects
// anything that would escape it. Path separators and parent references
// in the filename are treated as a missing source rather than leaked
// back as a distinct error.
func (s *SheetService) resolvePath(filename string) (string, error) {
	if filename == "" ||
		strings.ContainsAny(filename, `/\`) ||
		strings.Contains(filename, "..") {
		return "", fmt.Errorf("%w: %s", sheet.ErrNotFound, filename)
	}
	if !sheet.IsSupported(filename) {
		return "", fmt.Errorf("%w: %s", sheet.ErrUnsupportedFormat, filepath.Ext(filename))
	}
	return filepath.Join(s.dataDir, filename), nil
}

func toSheetStructure(p sheet.PreviewResult) v1.SheetStructure {
	cols := make([]v1.ColumnDescriptor, len(p.Columns))
	for i, c := range p.Columns {
		cols[i] = v1.ColumnDescriptor{Name: c.Name, Type: string(c.Type)}
	}
	return v1.SheetStructure{
		Name:       p.Name,
		Columns:    cols,
		SampleRows: p.SampleRows,
		TotalRows:  p.TotalRows,
		Truncated:  p.Truncated,
	}
}
