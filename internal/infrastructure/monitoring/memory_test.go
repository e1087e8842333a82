package monitoring_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/richiesure/day3-docker-ecs-deployment/internal/infrastructure/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHealthHandler(t *testing.T) {
	t.Parallel()

	runtime.GC()

	w := httptest.NewRecorder()
	monitoring.MemoryHealthHandler(w, httptest.NewRequest(http.MethodGet, "/health/memory", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got monitoring.MemoryHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Positive(t, got.NumGoroutine)
	assert.Positive(t, got.GOMaxProcs)
	assert.Positive(t, got.HeapAllocMB)
	assert.NotZero(t, got.NumGC)
	assert.False(t, got.Timestamp.IsZero())
}
