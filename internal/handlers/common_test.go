// internal/handlers/common_test.go
package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}

func TestParseIDList(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, parseIDList("1,2,3"))
	assert.Equal(t, []int64{4}, parseIDList(" 4 "))
	assert.Equal(t, []int64{2}, parseIDList("0,-1,x,2"))
	assert.Nil(t, parseIDList(""))
}

func TestSearchParamsFromQuery(t *testing.T) {
	c, _ := testContext(t, "/products/search?q=calculus&categoryId=2&tagIds=1,3&conditionIds=2&minPrice=10&maxPrice=50.5&publishedTimeRange=7d&sort=price_asc&page=2&pageSize=10")

	params := searchParams(c)
	assert.Equal(t, "calculus", params.Keyword)
	assert.Equal(t, int64(2), params.CategoryID)
	assert.Equal(t, []int64{1, 3}, params.TagIDs)
	assert.Equal(t, []int64{2}, params.ConditionIDs)
	require.NotNil(t, params.MinPrice)
	assert.Equal(t, 10.0, *params.MinPrice)
	require.NotNil(t, params.MaxPrice)
	assert.Equal(t, 50.5, *params.MaxPrice)
	assert.Equal(t, "7d", params.PublishedTimeRange)
	assert.Equal(t, "price_asc", params.Sort)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 10, params.PageSize)
}

func TestSearchParamsDefaults(t *testing.T) {
	c, _ := testContext(t, "/products/search")

	params := searchParams(c)
	assert.Empty(t, params.Keyword)
	assert.Nil(t, params.MinPrice)
	assert.Nil(t, params.MaxPrice)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.PageSize)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	c, w := testContext(t, "/products/abc")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := pathID(c, "id")
	assert.False(t, ok)

	var env models.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, models.CodeInvalidParams, env.Code)
}

func TestHandleServiceErrorMapsCode(t *testing.T) {
	c, w := testContext(t, "/products/1")

	handleServiceError(c, &services.ServiceError{Code: models.CodeForbidden, Key: i18n.KeyProductEditForbidden})

	var env models.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, models.CodeForbidden, env.Code)
	assert.Equal(t, "无权限操作该商品", env.Message)
}

func TestHandleServiceErrorInternalFallback(t *testing.T) {
	c, w := testContext(t, "/products/1")

	handleServiceError(c, assert.AnError)

	var env models.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, models.CodeInternal, env.Code)
}
