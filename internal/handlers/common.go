// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

// handleServiceError maps a services.ServiceError to the envelope code with a
// localized message. Anything else is an internal error.
func handleServiceError(c *gin.Context, err error) {
	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) {
		lang := utils.GetLangFromContext(c)
		utils.Error(c, serviceErr.Code, serviceErr.Message(lang))
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	utils.InternalError(c)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.InvalidParams(c, "")
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, name string) int64 {
	v, _ := strconv.ParseInt(c.Query(name), 10, 64)
	return v
}

func queryInt64List(c *gin.Context, name string) []int64 {
	return parseIDList(c.Query(name))
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// optionalViewerID returns the authenticated user id, or nil for anonymous
// requests that passed through OptionalAuth.
func optionalViewerID(c *gin.Context) *int64 {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
