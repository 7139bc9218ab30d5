package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	httpapi "github.com/oreltrt123/displan-sub003/internal/api/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := httpapi.NewHealthHandler("displan-api", "1.0.0", nil, nil)
	handler.RegisterRoutes(r)

	for _, path := range []string{"/health", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var resp httpapi.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "displan-api", resp.Service)
			assert.Equal(t, "1.0.0", resp.Version)
			assert.Equal(t, "disabled", resp.DB)
			assert.Equal(t, "disabled", resp.Redis)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}
