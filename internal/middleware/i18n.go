// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get language from header
		lang := c.GetHeader("Accept-Language")

		// Parse language preference
		if lang != "" {
			// Handle cases like "zh-CN,zh;q=0.9,en;q=0.8"
			langs := strings.Split(lang, ",")
			if len(langs) > 0 {
				firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
				switch {
				case strings.HasPrefix(firstLang, "zh"):
					lang = i18n.LangZH
				case strings.HasPrefix(firstLang, "en"):
					lang = i18n.LangEN
				default:
					lang = i18n.LangZH
				}
			}
		} else {
			lang = i18n.LangZH
		}

		// Set language in context
		c.Set("lang", lang)
		c.Next()
	}
}
