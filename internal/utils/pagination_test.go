// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := GetPaginationParams(contextWithQuery(""))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, 0, params.Offset())
}

func TestGetPaginationParamsClamps(t *testing.T) {
	params := GetPaginationParams(contextWithQuery("page=-2&limit=9999"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)

	params = GetPaginationParams(contextWithQuery("page=3&limit=50&search=smith"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, "smith", params.Search)
	assert.Equal(t, 100, params.Offset())
}

func TestGetSkipLimit(t *testing.T) {
	skip, limit := GetSkipLimit(contextWithQuery(""))
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)

	skip, limit = GetSkipLimit(contextWithQuery("skip=-5&limit=5000"))
	assert.Equal(t, 0, skip)
	assert.Equal(t, 100, limit)

	skip, limit = GetSkipLimit(contextWithQuery("skip=200&limit=50"))
	assert.Equal(t, 200, skip)
	assert.Equal(t, 50, limit)
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult([]string{"a", "b"}, 41, params)

	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}
