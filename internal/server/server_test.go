package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceDesign = `{
	"units": "in",
	"inner_diameter": 8.375,
	"outer_diameter": 10.53,
	"bobbin_length": 0.546,
	"strand_diameter": 0.0337,
	"strands_per_turn": 3,
	"turns_per_layer": 5,
	"total_turns": 180
}`

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestDefaults_Inches(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/defaults?units=in", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "in", body["units"])
	assert.InDelta(t, 8.375, body["inner_diameter"], 1e-9)
	assert.EqualValues(t, 180, body["total_turns"])
}

func TestLayout_ReferenceDesign(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/layout", referenceDesign)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Units  string `json:"units"`
		Result struct {
			WindowWidth   float64 `json:"window_width"`
			WindowHeight  float64 `json:"window_height"`
			Layers        int     `json:"layers"`
			PlacedStrands int     `json:"placed_strands"`
			FillFactor    float64 `json:"fill_factor"`
			Strands       []struct {
				X, Y  float64
				Layer int
			} `json:"strands"`
		} `json:"result"`
		Estimate struct {
			Resistance float64 `json:"resistance_ohm"`
		} `json:"estimate"`
		Shortfall *struct{} `json:"shortfall"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "mm", body.Units)
	assert.InDelta(t, 12.3684, body.Result.WindowWidth, 1e-9)
	assert.InDelta(t, 25.8685, body.Result.WindowHeight, 1e-9)
	assert.Equal(t, 36, body.Result.Layers)
	assert.Equal(t, 540, body.Result.PlacedStrands)
	assert.Len(t, body.Result.Strands, 540)
	assert.InDelta(t, 113.2853, body.Result.FillFactor, 1e-3)
	assert.InDelta(t, 1.3558, body.Estimate.Resistance, 1e-4)
	assert.Nil(t, body.Shortfall)
}

func TestLayout_UnitsOnlyChangePresentation(t *testing.T) {
	s := newTestServer()
	mm := do(t, s, http.MethodPost, "/api/layout?units=mm", referenceDesign)
	in := do(t, s, http.MethodPost, "/api/layout?units=in", referenceDesign)
	require.Equal(t, http.StatusOK, mm.Code)
	require.Equal(t, http.StatusOK, in.Code)

	var a, b struct {
		Result struct {
			WindowWidth float64 `json:"window_width"`
			FillFactor  float64 `json:"fill_factor"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(mm.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(in.Body.Bytes(), &b))

	assert.InDelta(t, a.Result.WindowWidth/25.4, b.Result.WindowWidth, 1e-12)
	assert.Equal(t, a.Result.FillFactor, b.Result.FillFactor)
}

func TestLayout_Shortfall(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/layout", `{"total_turns": 400}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Shortfall struct {
			Requested int `json:"requested"`
			Placed    int `json:"placed"`
			Unplaced  int `json:"unplaced"`
		} `json:"shortfall"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1200, body.Shortfall.Requested)
	assert.Equal(t, 540, body.Shortfall.Placed)
	assert.Equal(t, 660, body.Shortfall.Unplaced)
}

func TestLayout_EmptyBodyUsesDefaults(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"layers":36`)
}

func TestLayout_InvalidInput(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/layout", `{"turns_per_layer": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"turns_per_layer"`)

	rec = do(t, s, http.MethodPost, "/api/layout", `{"units": "mm", "inner_diameter": 100, "outer_diameter": 101}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "window height")

	rec = do(t, s, http.MethodPost, "/api/layout", `{"total_turns": 1099511627776}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"total_turns"`)

	rec = do(t, s, http.MethodPost, "/api/layout?units=cubit", referenceDesign)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLayout_MalformedJSON(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/layout", `{"total_turns": "many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, newTestServer(), http.MethodPost, "/api/layout", `{oops`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRender(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/api/render", referenceDesign)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = do(t, s, http.MethodPost, "/api/render?format=svg&units=in", referenceDesign)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = do(t, s, http.MethodPost, "/api/render?format=gif", referenceDesign)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/chart", referenceDesign)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "echarts")
}

func TestExport(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/export", referenceDesign)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "coil.xlsx")
	// xlsx is a zip container
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}
