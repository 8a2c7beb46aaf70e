// internal/handlers/home.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type HomeHandler struct {
	homeService *services.HomeService
}

func NewHomeHandler(homeService *services.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// GET /home
func (h *HomeHandler) Home(c *gin.Context) {
	params := utils.GetPageParams(c)

	data, err := h.homeService.HomeData(c.Request.Context(), optionalViewerID(c), params.Page, params.PageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, data)
}
