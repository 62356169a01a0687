package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_IsolatedRegistries(t *testing.T) {
	a := NewManager()
	b := NewManager()

	a.RecordMutation("assign")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.lineupMutations.WithLabelValues("assign")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.lineupMutations.WithLabelValues("assign")))
}

func TestNewManager_Options(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithNamespace("test"), WithRegistry(registry), WithHistogramBuckets([]float64{1, 2}))

	assert.Same(t, registry, m.Registry())
	m.SetRosterSize(3)

	families, err := registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "test_roster_candidates")
}

func TestRecording(t *testing.T) {
	m := NewManager()

	m.ObserveModelCall("scouting", OutcomeOK, 2*time.Second)
	m.ObserveModelCall("scouting", OutcomeError, time.Second)
	m.ObserveModelCall("scouting", OutcomeOK, time.Second)
	m.RecordBusy("analyzing")
	m.RecordDropped("unknown_candidate")
	m.SetRosterSize(4)
	m.SetOccupied(2)
	m.ObserveHTTP("GET /squad", http.MethodGet, 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.modelCalls.WithLabelValues("scouting", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCalls.WithLabelValues("scouting", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.busyRejections.WithLabelValues("analyzing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconcileDropped.WithLabelValues("unknown_candidate")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rosterSize))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.occupiedSlots))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /squad", "GET", "200")))
}

func TestHandler(t *testing.T) {
	m := NewManager()
	m.RecordMutation("remove")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `squad_lineup_mutations_total{op="remove"} 1`)
}
