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

func TestMetrics(t *testing.T) {
	t.Run("Should count interview lifecycle", func(t *testing.T) {
		m := NewMetrics()

		m.IncrementInterviewsStarted()
		m.IncrementInterviewsStarted()
		m.IncrementInterviewsCompleted()
		m.IncrementAnswersAccepted("boolean")
		m.IncrementAnswersAccepted("boolean")
		m.IncrementAnswersAccepted("date")
		m.IncrementEligibilityCall(OutcomeFallback)
		m.IncrementResultsSaved(true)

		assert.Equal(t, float64(2), testutil.ToFloat64(m.InterviewsStarted))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.InterviewsCompleted))
		assert.Equal(t, float64(2), testutil.ToFloat64(m.AnswersAccepted.WithLabelValues("boolean")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.AnswersAccepted.WithLabelValues("date")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.EligibilityCalls.WithLabelValues(OutcomeFallback)))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.ResultsSaved.WithLabelValues("true")))
	})

	t.Run("Should expose metrics over HTTP", func(t *testing.T) {
		m := NewMetrics()
		m.IncrementInterviewsStarted()

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "expungement_interviews_started_total 1")
	})
}
