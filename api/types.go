// Package api - API types
// These types define the request and response contract of /api/v1.
// The API is stateless, idempotent and deterministic.
package api

import (
	"buildcost/core/catalog"
	"buildcost/core/diff"
	"buildcost/core/estimate"
	"buildcost/core/materials"
	"buildcost/core/surface"
	"buildcost/core/types"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EstimateResponse is the output of POST /api/v1/estimate
type EstimateResponse struct {
	*estimate.Result

	// Violations are user-correctable conditions, not failures
	Violations []SurfaceViolation `json:"violations"`

	Request RequestMetadata `json:"request"`
}

// SurfaceViolation is a violation tagged with its surface
type SurfaceViolation struct {
	SurfaceID string `json:"surface_id"`
	surface.Violation
}

// DiffRequest is the input to POST /api/v1/diff
type DiffRequest struct {
	Before    types.Project `json:"before"`
	After     types.Project `json:"after"`
	Threshold float64       `json:"threshold,omitempty"`
}

// DiffResponse is the output of POST /api/v1/diff
type DiffResponse struct {
	*diff.DiffResult
	Summary string          `json:"summary"`
	Request RequestMetadata `json:"request"`
}

// RequestMetadata describes the request that produced a response
type RequestMetadata struct {
	RequestID  string `json:"request_id"`
	DurationMs int64  `json:"duration_ms"`
}

// AreaRequest is the input to POST /geometry/area
type AreaRequest struct {
	Length        types.Measure `json:"length"`
	HeightOrWidth types.Measure `json:"height_or_width"`
}

// VolumeRequest is the input to POST /geometry/volume
type VolumeRequest struct {
	Area      types.Measure `json:"area"`
	Thickness types.Measure `json:"thickness"`
}

// TileAreaRequest is the input to POST /geometry/tile-area
type TileAreaRequest struct {
	TileHeight types.Measure `json:"tile_height"`
	Length     types.Measure `json:"length"`
	WallHeight types.Measure `json:"wall_height"`
}

// PlotAreaRequest is the input to POST /geometry/plot-area
type PlotAreaRequest struct {
	PlotSizeMarlas types.Measure   `json:"plot_size_marlas"`
	MarlaSize      types.MarlaSize `json:"marla_size"`
}

// MeasureResponse carries a single computed measure
type MeasureResponse struct {
	Value      types.Measure       `json:"value"`
	Violations []surface.Violation `json:"violations"`
}

// WallRequest is the input to POST /materials/wall
type WallRequest struct {
	Volume   types.Measure `json:"volume"`
	Material string        `json:"material"`
}

// PlasterRequest is the input to POST /materials/plaster
type PlasterRequest struct {
	Area types.Measure `json:"area"`
}

// ConcreteRequest is the input to POST /materials/concrete
type ConcreteRequest struct {
	Volume types.Measure  `json:"volume"`
	Mix    *materials.Mix `json:"mix,omitempty"`
}

// ConsumptionResponse carries a material take-off
type ConsumptionResponse struct {
	Material    string                `json:"material,omitempty"`
	Consumption materials.Consumption `json:"consumption"`
	CarbonKg    float64               `json:"carbon_kg"`
}

// CatalogSummary describes one catalog in GET /catalogs
type CatalogSummary struct {
	Kind    catalog.Kind `json:"kind"`
	Entries int          `json:"entries"`
}

// CatalogResponse is the output of GET /catalogs/{kind}
type CatalogResponse struct {
	Kind    catalog.Kind           `json:"kind"`
	Entries []catalog.MaterialSpec `json:"entries"`
}
