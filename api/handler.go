// Package api - HTTP handlers
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"buildcost/core/carbon"
	"buildcost/core/catalog"
	"buildcost/core/diff"
	"buildcost/core/estimate"
	"buildcost/core/geometry"
	"buildcost/core/materials"
	"buildcost/core/surface"
	"buildcost/core/types"
	"buildcost/internal/errors"
)

// Handler serves the /api/v1 routes
type Handler struct {
	engine  *estimate.Engine
	maxBody int64
}

// NewHandler creates a new handler
func NewHandler(engine *estimate.Engine, maxBody int64) *Handler {
	return &Handler{engine: engine, maxBody: maxBody}
}

// decode reads a JSON body, rejecting unknown fields
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		writeError(w, "INVALID_REQUEST", "Failed to parse request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// Estimate handles POST /api/v1/estimate
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var project types.Project
	if !h.decode(w, r, &project) {
		return
	}

	result, err := h.engine.Estimate(r.Context(), &project)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := EstimateResponse{
		Result:     result,
		Violations: []SurfaceViolation{},
		Request: RequestMetadata{
			RequestID:  middleware.GetReqID(r.Context()),
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
	for _, sr := range result.Surfaces {
		for _, v := range sr.Violations {
			resp.Violations = append(resp.Violations, SurfaceViolation{SurfaceID: sr.Surface.ID, Violation: v})
		}
	}
	writeJSON(w, resp, http.StatusOK)
}

// Diff handles POST /api/v1/diff
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DiffRequest
	if !h.decode(w, r, &req) {
		return
	}

	before, err := h.engine.Estimate(r.Context(), &req.Before)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	after, err := h.engine.Estimate(r.Context(), &req.After)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := diff.NewDiffer(req.Threshold).Diff(before, after)
	writeJSON(w, DiffResponse{
		DiffResult: result,
		Summary:    result.Summary(),
		Request: RequestMetadata{
			RequestID:  middleware.GetReqID(r.Context()),
			DurationMs: time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// Area handles POST /api/v1/geometry/area
func (h *Handler) Area(w http.ResponseWriter, r *http.Request) {
	var req AreaRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeMeasure(w, geometry.ComputeArea(req.Length, req.HeightOrWidth), nil)
}

// Volume handles POST /api/v1/geometry/volume
func (h *Handler) Volume(w http.ResponseWriter, r *http.Request) {
	var req VolumeRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeMeasure(w, geometry.ComputeVolume(req.Area, req.Thickness), nil)
}

// TileArea handles POST /api/v1/geometry/tile-area.
// An exceeded wall height is reported as a violation with an empty value.
func (h *Handler) TileArea(w http.ResponseWriter, r *http.Request) {
	var req TileAreaRequest
	if !h.decode(w, r, &req) {
		return
	}
	area, err := geometry.ComputeTileArea(req.TileHeight, req.Length, req.WallHeight)
	if err != nil {
		v, ok := surface.AsViolation(err)
		if !ok {
			writeDomainError(w, err)
			return
		}
		writeMeasure(w, types.None, []surface.Violation{v})
		return
	}
	writeMeasure(w, area, nil)
}

// PlotArea handles POST /api/v1/geometry/plot-area
func (h *Handler) PlotArea(w http.ResponseWriter, r *http.Request) {
	var req PlotAreaRequest
	if !h.decode(w, r, &req) {
		return
	}
	size := req.MarlaSize
	if size == 0 {
		size = h.engine.Config().MarlaSize
	}
	if !size.IsValid() {
		writeDomainError(w, errors.Newf(errors.TypeInput, "invalid marla size %d: must be %d or %d",
			size, types.MarlaSize252, types.MarlaSize272))
		return
	}
	writeMeasure(w, geometry.ComputePlotArea(req.PlotSizeMarlas, size), nil)
}

// Wall handles POST /api/v1/materials/wall
func (h *Handler) Wall(w http.ResponseWriter, r *http.Request) {
	var req WallRequest
	if !h.decode(w, r, &req) {
		return
	}
	spec, ok := h.engine.Catalogs().Find(catalog.KindBrick, req.Material)
	if !ok {
		writeDomainError(w, errors.NotFound("material", req.Material))
		return
	}
	c := materials.WallConsumption(req.Volume.Or(0), &spec)
	writeJSON(w, ConsumptionResponse{
		Material:    spec.Name,
		Consumption: c,
		CarbonKg:    h.engine.Config().Carbon.ForConsumption(c) + carbon.ForMaterial(spec, float64(c.NumUnits)),
	}, http.StatusOK)
}

// Plaster handles POST /api/v1/materials/plaster
func (h *Handler) Plaster(w http.ResponseWriter, r *http.Request) {
	var req PlasterRequest
	if !h.decode(w, r, &req) {
		return
	}
	c := materials.Plaster(req.Area.Or(0))
	writeJSON(w, ConsumptionResponse{Consumption: c, CarbonKg: h.engine.Config().Carbon.ForConsumption(c)}, http.StatusOK)
}

// Concrete handles POST /api/v1/materials/concrete
func (h *Handler) Concrete(w http.ResponseWriter, r *http.Request) {
	var req ConcreteRequest
	if !h.decode(w, r, &req) {
		return
	}
	mix := h.engine.Config().Mix
	if req.Mix != nil {
		mix = *req.Mix
	}
	c := materials.Concrete(req.Volume.Or(0), mix)
	writeJSON(w, ConsumptionResponse{Consumption: c, CarbonKg: h.engine.Config().Carbon.ForConsumption(c)}, http.StatusOK)
}

// ListCatalogs handles GET /api/v1/catalogs
func (h *Handler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	out := make([]CatalogSummary, 0, len(catalog.Kinds()))
	for _, kind := range catalog.Kinds() {
		if c, ok := h.engine.Catalogs().Get(kind); ok {
			out = append(out, CatalogSummary{Kind: kind, Entries: c.Len()})
		}
	}
	writeJSON(w, out, http.StatusOK)
}

// GetCatalog handles GET /api/v1/catalogs/{kind}
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	c, ok := h.catalogFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, CatalogResponse{Kind: c.Kind(), Entries: c.All()}, http.StatusOK)
}

// GetMaterial handles GET /api/v1/catalogs/{kind}/{name}
func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	c, ok := h.catalogFor(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	spec, found := catalog.FindMaterial(c, name)
	if !found {
		writeDomainError(w, errors.NotFound("material", name))
		return
	}
	writeJSON(w, spec, http.StatusOK)
}

func (h *Handler) catalogFor(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	c, ok := h.engine.Catalogs().Get(kind)
	if !ok {
		writeDomainError(w, errors.NotFound("catalog", string(kind)))
		return nil, false
	}
	return c, true
}

func writeMeasure(w http.ResponseWriter, m types.Measure, violations []surface.Violation) {
	if violations == nil {
		violations = []surface.Violation{}
	}
	writeJSON(w, MeasureResponse{Value: m, Violations: violations}, http.StatusOK)
}
