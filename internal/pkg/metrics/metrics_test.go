package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/proposals/client/{requestId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/proposals/client/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/proposals/client/{requestId}", "404"))
	assert.Equal(t, float64(2), got)
}

func TestObserveGeneration(t *testing.T) {
	m := New()
	m.ObserveGeneration("proposal", OutcomeSuccess)
	m.ObserveGeneration("proposal", OutcomeSuccess)
	m.ObserveUpstream("proposal", time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.generations.WithLabelValues("proposal", OutcomeSuccess)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "proposal_backend_generations_total")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveGeneration("proposal", OutcomeError)
	m.ObserveUpstream("proposal", time.Second)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, OutcomeRateLimited, OutcomeOf(&entity.RateLimitError{RetryAfter: 1}))
	assert.Equal(t, OutcomeBadOutput, OutcomeOf(&entity.BadUpstreamOutputError{Raw: "x", Err: errors.New("bad")}))
	assert.Equal(t, OutcomeUpstream, OutcomeOf(entity.ErrUpstreamTimeout))
	assert.Equal(t, OutcomeError, OutcomeOf(entity.ErrNoAnswers))
}
