package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/birdguide/internal/metrics"
)

func TestMetrics_ReviewAndBadgeCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.RecordReview("correct")
	m.RecordReview("correct")
	m.RecordReview("incorrect")
	m.RecordBadge("first_review")

	expected := `
# HELP birdguide_reviews_total Total number of flashcard reviews recorded
# TYPE birdguide_reviews_total counter
birdguide_reviews_total{result="correct"} 2
birdguide_reviews_total{result="incorrect"} 1
# HELP birdguide_badges_awarded_total Total number of badges awarded
# TYPE birdguide_badges_awarded_total counter
birdguide_badges_awarded_total{badge="first_review"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"birdguide_reviews_total", "birdguide_badges_awarded_total"))
}

func TestMetrics_SessionsAndHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.RecordSessionStarted()
	m.RecordSessionCompleted("user")
	m.RecordSessionCompleted("expired")
	m.RecordProgressConflict()
	m.ObserveHTTP(http.MethodGet, "/species", http.StatusOK, 20*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "birdguide_sessions_completed_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "birdguide_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordReview("correct")
		m.RecordBadge("first_review")
		m.RecordSessionStarted()
		m.RecordSessionCompleted("user")
		m.RecordProgressConflict()
		m.ObserveHTTP(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	m.RecordSessionStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "birdguide_sessions_started_total 1")
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	assert.Error(t, err)
}
