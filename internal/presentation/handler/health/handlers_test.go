package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	req := require.New(t)
	h := NewHandler()

	rec := httptest.NewRecorder()
	h.GetHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	req.Equal(http.StatusOK, rec.Code)
	var body healthResponse
	req.NoError(json.NewDecoder(rec.Body).Decode(&body))
	req.Equal("ok", body.Status)

	h.MarkUnhealthy()
	rec = httptest.NewRecorder()
	h.GetHealth(rec, httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.NoError(json.NewDecoder(rec.Body).Decode(&body))
	req.Equal("unhealthy", body.Status)
}
