// internal/middleware/recovery.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

// Recovery turns a panic into an envelope-level internal error instead of a
// dropped connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithFields(logrus.Fields{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		}).Error("panic recovered")
		utils.InternalError(c)
		c.Abort()
	})
}
