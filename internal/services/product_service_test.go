// internal/services/product_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
)

func TestParseTagIDs(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, parseTagIDs("1,2,3"))
	assert.Equal(t, []int64{5}, parseTagIDs(" 5 "))
	assert.Equal(t, []int64{7, 9}, parseTagIDs("7,,abc,9"))
	assert.Empty(t, parseTagIDs(""))
}

func TestPublishedCutoff(t *testing.T) {
	now := time.Now()

	cutoff, ok := publishedCutoff("7d")
	assert.True(t, ok)
	assert.WithinDuration(t, now.AddDate(0, 0, -7), cutoff, time.Minute)

	cutoff, ok = publishedCutoff("1d")
	assert.True(t, ok)
	assert.WithinDuration(t, now.AddDate(0, 0, -1), cutoff, time.Minute)

	_, ok = publishedCutoff("")
	assert.False(t, ok)
	_, ok = publishedCutoff("90d")
	assert.False(t, ok)
}

func TestServiceErrorMessages(t *testing.T) {
	err := invalidParams(i18n.KeyProductNotFound)
	assert.Equal(t, 1001, err.Code)
	assert.Equal(t, i18n.KeyProductNotFound, err.Error())
	assert.Equal(t, "商品不存在", err.Message(i18n.LangZH))
	assert.Equal(t, "Product not found", err.Message(i18n.LangEN))

	forbiddenErr := forbidden(i18n.KeyProductEditForbidden)
	assert.Equal(t, 1003, forbiddenErr.Code)
}

func TestStatusCacheKeys(t *testing.T) {
	assert.Equal(t, "product:status:undo:42", statusCacheKey(42))
	assert.Equal(t, "product:detail:42", detailCacheKey(42))
	assert.NotEqual(t, statusCacheKey(1), detailCacheKey(1))
}
