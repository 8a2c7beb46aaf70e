// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// Every endpoint answers HTTP 200 with the `{code, message, data}` envelope;
// business failures are carried in the code.

func Success(c *gin.Context, data interface{}) {
	lang := GetLangFromContext(c)
	c.JSON(http.StatusOK, models.Envelope[interface{}]{
		Code:    models.CodeSuccess,
		Message: i18n.T(lang, i18n.KeyOK),
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Envelope[interface{}]{
		Code:    models.CodeSuccess,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, models.Envelope[interface{}]{
		Code:    code,
		Message: message,
	})
}

func InvalidParams(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyInvalidParams)
	}
	Error(c, models.CodeInvalidParams, message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	Error(c, models.CodeUnauthenticated, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthForbidden)
	}
	Error(c, models.CodeForbidden, message)
}

func InternalError(c *gin.Context) {
	Error(c, models.CodeInternal, i18n.T(GetLangFromContext(c), i18n.KeyInternalError))
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.LangZH
}

func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

func IsAdminFromContext(c *gin.Context) bool {
	if isAdmin, exists := c.Get("is_admin"); exists {
		if b, ok := isAdmin.(bool); ok {
			return b
		}
	}
	return false
}
