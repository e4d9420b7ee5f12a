// internal/middleware/rate_limit_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herambgvd/gvd-frs/internal/config"
)

func limitedRouter(limiter gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", limiter, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func pingFrom(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":51234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBurstExhausted(t *testing.T) {
	limiters := NewLimiters(config.RateLimitConfig{
		GeneralPerSecond:  2,
		UploadsPerMinute:  10,
		ValidatePerSecond: 50,
	})
	r := limitedRouter(limiters.General())

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1").Code)

	w := pingFrom(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiters := NewLimiters(config.RateLimitConfig{
		GeneralPerSecond:  1,
		UploadsPerMinute:  10,
		ValidatePerSecond: 50,
	})
	r := limitedRouter(limiters.General())

	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, pingFrom(r, "10.0.0.1").Code)

	// A different client still has its own budget.
	assert.Equal(t, http.StatusOK, pingFrom(r, "10.0.0.2").Code)
}
