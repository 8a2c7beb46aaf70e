// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "商品不存在", T(LangZH, KeyProductNotFound))
	assert.Equal(t, "Product not found", T(LangEN, KeyProductNotFound))
}

func TestTranslateFallsBackToDefaultLang(t *testing.T) {
	// Unknown language falls back to zh.
	assert.Equal(t, "商品不存在", T("fr", KeyProductNotFound))
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	assert.Equal(t, "no.such.key", T(LangZH, "no.such.key"))
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.ElementsMatch(t, []string{LangZH, LangEN}, langs)
}
