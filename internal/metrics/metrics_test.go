package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Deletion("r2", ResultDeleted)
	m.Deletion("r2", ResultDeleted)
	m.Deletion("", ResultNotFound)
	m.TelegramDelete(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.deletions.WithLabelValues("r2", ResultDeleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deletions.WithLabelValues("unknown", ResultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.telegram.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.telegram.WithLabelValues("deleted")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Deletion("telegram", ResultDegraded)
		m.TelegramDelete(true)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Deletion("telegram", ResultDegraded)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `imgbed_deletions_total{backend="telegram",result="degraded"} 1`)
}
