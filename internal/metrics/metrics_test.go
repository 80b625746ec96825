package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maya/media-user-api/internal/metrics"
)

func TestCollector_Exposition(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordRequest(http.MethodGet, "/api/user/favourites", http.StatusOK, 12*time.Millisecond)
	c.RecordRequest(http.MethodPut, "/api/user/favourites/{id}", http.StatusOK, 5*time.Millisecond)
	c.RecordAuthFailure()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "user_api_requests_total")
	assert.Contains(t, string(body), "user_api_request_duration_seconds")
	assert.Contains(t, string(body), "user_api_auth_failures_total 1")
}
