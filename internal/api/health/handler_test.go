package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/internal/api/health"
	"krishimitra/pkg/logger"
)

type stubComponent struct {
	ready   bool
	loadErr string
}

func (s stubComponent) Ready() bool       { return s.ready }
func (s stubComponent) LoadError() string { return s.loadErr }

func newHandler(components map[string]health.Component) *health.Handler {
	return health.New(logger.Get(), components, "krishimitra", "1.0.0")
}

func TestLiveness_AlwaysOK(t *testing.T) {
	h := newHandler(map[string]health.Component{
		"crop": stubComponent{ready: false, loadErr: "model missing"},
	})

	rec := httptest.NewRecorder()
	h.HandleLiveness(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadiness_AllReady(t *testing.T) {
	h := newHandler(map[string]health.Component{
		"disease":    stubComponent{ready: true},
		"crop":       stubComponent{ready: true},
		"irrigation": stubComponent{ready: true},
	})

	rec := httptest.NewRecorder()
	h.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status health.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
}

func TestReadiness_OneModelMissing(t *testing.T) {
	h := newHandler(map[string]health.Component{
		"disease":    stubComponent{ready: true},
		"crop":       stubComponent{ready: false, loadErr: "failed to load ONNX model"},
		"irrigation": stubComponent{ready: true},
	})

	rec := httptest.NewRecorder()
	h.HandleReadiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status health.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unhealthy", status.Checks["crop"].Status)
	assert.Equal(t, "failed to load ONNX model", status.Checks["crop"].Error)
}

func TestHealth_DegradedStaysUp(t *testing.T) {
	h := newHandler(map[string]health.Component{
		"disease": stubComponent{ready: true},
		"crop":    stubComponent{ready: false, loadErr: "model missing"},
	})

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// a partially loaded process keeps serving what it can
	require.Equal(t, http.StatusOK, rec.Code)

	var status health.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
}

func TestHealth_AllModelsMissing(t *testing.T) {
	h := newHandler(map[string]health.Component{
		"disease": stubComponent{ready: false, loadErr: "model missing"},
		"crop":    stubComponent{ready: false, loadErr: "model missing"},
	})

	rec := httptest.NewRecorder()
	h.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status health.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "unhealthy", status.Status)
}
