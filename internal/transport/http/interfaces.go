// Package http contains the HTTP transport layer: request decoding,
// validation, routing and response envelopes. Business logic lives in
// the services package behind the interfaces declared here.
package http

import (
	"context"

	v1 "sheetviz/pkg/contracts/api/v1"
)

// SheetService is the contract the sheet handler depends on.
type SheetService interface {
	GetStructure(ctx context.Context, filename string, maxRows int) (*v1.StructureResponse, error)
	BuildChart(ctx context.Context, filename string, dto v1.ChartRequest) (*v1.ChartResponse, error)
}
