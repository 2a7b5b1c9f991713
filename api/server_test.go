package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildcost/core/carbon"
	"buildcost/core/estimate"
	"buildcost/core/materials"
)

func newTestServer() *Server {
	engine := estimate.NewEngine(estimate.DefaultConfig(), estimate.WithLogger(zap.NewNop()))
	return NewServer(engine, Options{Version: "test", Logger: zap.NewNop()})
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()

	rec, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	rec, body = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", body["version"])
	assert.Equal(t, "v1", body["api_version"])
}

func TestEstimateEndpoint(t *testing.T) {
	s := newTestServer()
	project := `{
		"name": "House",
		"plot_size_marlas": 10,
		"surfaces": [
			{"id": "w1", "kind": "wall", "length": 10, "height": 8, "thickness": 6, "material": "Clay Brick"},
			{"id": "w2", "kind": "wall", "length": 10, "height": 8, "thickness": 6, "material": "Clay Brick",
			 "is_tiles_used": true, "tile_height": 9}
		]
	}`

	rec, body := do(t, s, http.MethodPost, "/api/v1/estimate", project)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, 2720.0, body["plot_area"])
	assert.Len(t, body["surfaces"], 2)
	assert.NotEmpty(t, body["input_hash"])

	violations := body["violations"].([]interface{})
	require.Len(t, violations, 1)
	v := violations[0].(map[string]interface{})
	assert.Equal(t, "w2", v["surface_id"])
	assert.Equal(t, "TILE_HEIGHT_EXCEEDS_WALL_HEIGHT", v["code"])

	totals := body["totals"].(map[string]interface{})
	units := totals["units_by_material"].(map[string]interface{})
	assert.Equal(t, 566.0, units["Clay Brick"])
	assert.Equal(t, 1.0, totals["blocked"])
}

func TestEstimateRejectsMalformedBody(t *testing.T) {
	s := newTestServer()

	rec, body := do(t, s, http.MethodPost, "/api/v1/estimate", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", body["error"].(map[string]interface{})["code"])

	rec, _ = do(t, s, http.MethodPost, "/api/v1/estimate", `{"name": "x", "floors": 2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")

	rec, _ = do(t, s, http.MethodPost, "/api/v1/estimate", `{"surfaces": [{"kind": "dome"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeometryEndpoints(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		path string
		body string
		want interface{}
	}{
		{"/api/v1/geometry/area", `{"length": 10, "height_or_width": 8}`, 80.0},
		{"/api/v1/geometry/area", `{"length": "", "height_or_width": 8}`, nil},
		{"/api/v1/geometry/volume", `{"area": 80, "thickness": 6}`, 40.0},
		{"/api/v1/geometry/tile-area", `{"tile_height": 4, "length": 10, "wall_height": 8}`, 40.0},
		{"/api/v1/geometry/plot-area", `{"plot_size_marlas": 5, "marla_size": 252}`, 1260.0},
		{"/api/v1/geometry/plot-area", `{"plot_size_marlas": 5}`, 1360.0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, body := do(t, s, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, body["value"])
			assert.Empty(t, body["violations"])
		})
	}
}

func TestTileAreaViolation(t *testing.T) {
	rec, body := do(t, newTestServer(), http.MethodPost, "/api/v1/geometry/tile-area",
		`{"tile_height": 9, "length": 10, "wall_height": 8}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["value"])
	violations := body["violations"].([]interface{})
	require.Len(t, violations, 1)
	assert.Equal(t, "TILE_HEIGHT_EXCEEDS_WALL_HEIGHT", violations[0].(map[string]interface{})["code"])
}

func TestPlotAreaRejectsUnknownMarlaSize(t *testing.T) {
	rec, _ := do(t, newTestServer(), http.MethodPost, "/api/v1/geometry/plot-area",
		`{"plot_size_marlas": 5, "marla_size": 225}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMaterialsEndpoints(t *testing.T) {
	s := newTestServer()

	rec, body := do(t, s, http.MethodPost, "/api/v1/materials/wall", `{"volume": 40, "material": "Clay Brick"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	consumption := body["consumption"].(map[string]interface{})
	assert.Equal(t, 566.0, consumption["num_units"])
	assert.InDelta(t, 2.11, consumption["cement_bags"], 0.01)
	assert.Greater(t, body["carbon_kg"], 566*0.72)

	rec, _ = do(t, s, http.MethodPost, "/api/v1/materials/wall", `{"volume": 40, "material": "Moon Rock"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, s, http.MethodPost, "/api/v1/materials/plaster", `{"area": 100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.9583, body["consumption"].(map[string]interface{})["cement_bags"], 1e-3)
	assert.InDelta(t, carbon.DefaultFactors().ForConsumption(materials.Plaster(100)), body["carbon_kg"], 1e-6)

	rec, body = do(t, s, http.MethodPost, "/api/v1/materials/concrete", `{"volume": 10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 8.8, body["consumption"].(map[string]interface{})["aggregate_volume"], 1e-9)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalogs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []CatalogSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 5)

	rec2, body := do(t, s, http.MethodGet, "/api/v1/catalogs/brick", "")
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, "brick", body["kind"])
	assert.NotEmpty(t, body["entries"])

	rec2, body = do(t, s, http.MethodGet, "/api/v1/catalogs/brick/Clay%20Brick", "")
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, "Clay Brick", body["name"])

	rec2, _ = do(t, s, http.MethodGet, "/api/v1/catalogs/roofing", "")
	assert.Equal(t, http.StatusNotFound, rec2.Code)

	rec2, _ = do(t, s, http.MethodGet, "/api/v1/catalogs/brick/Nope", "")
	assert.Equal(t, http.StatusNotFound, rec2.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", strings.NewReader(`{"name":"x","surfaces":[]}`))
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Request RequestMetadata `json:"request"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.Request.RequestID)
}

func TestDiffEndpoint(t *testing.T) {
	body := `{
		"before": {"name": "v1", "surfaces": [
			{"id": "w1", "kind": "wall", "length": 10, "height": 8, "thickness": 9, "material": "Clay Brick"}
		]},
		"after": {"name": "v2", "surfaces": [
			{"id": "w1", "kind": "wall", "length": 15, "height": 8, "thickness": 9, "material": "Clay Brick"},
			{"id": "s1", "kind": "slab", "length": 10, "width": 10, "thickness": 5}
		]}
	}`

	rec, out := do(t, newTestServer(), http.MethodPost, "/api/v1/diff", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Len(t, out["added"], 1)
	assert.Len(t, out["changed"], 1)
	assert.Empty(t, out["removed"])
	assert.Contains(t, out["summary"], "Cost increased")

	changed := out["changed"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "modified", changed["change_type"])
}
