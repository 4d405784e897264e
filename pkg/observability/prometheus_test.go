package observability

import (
	"context"
	stderrors "errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/trophic/pkg/errors"
)

func TestMetrics_Level(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()

	m.OnLevelStart(ctx, 4, 3)
	m.OnLevelComplete(ctx, 4, 10*time.Millisecond, nil)
	m.OnLevelComplete(ctx, 4, time.Millisecond, errors.New(errors.ErrCodeDisconnected, "x"))
	m.OnLevelComplete(ctx, 4, time.Millisecond, stderrors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LevelsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LevelsTotal.WithLabelValues("GRAPH_DISCONNECTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LevelsTotal.WithLabelValues("error")))
}

func TestMetrics_CacheAndHTTP(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()

	m.OnCacheHit(ctx, "levels")
	m.OnCacheHit(ctx, "levels")
	m.OnCacheMiss(ctx, "levels")
	m.OnCacheSet(ctx, "artifact", 512)
	m.OnResponse(ctx, "POST", "/v1/levels", 422, time.Millisecond)
	m.OnRenderComplete(ctx, "svg", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("levels", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("levels", "miss")))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.CacheWriteBytes.WithLabelValues("artifact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/v1/levels", "422")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RendersTotal.WithLabelValues("svg", "ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.OnLevelComplete(context.Background(), 2, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `trophic_levels_total{outcome="ok"} 1`), string(body))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.OnCacheHit(context.Background(), "levels")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheLookups.WithLabelValues("levels", "hit")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
