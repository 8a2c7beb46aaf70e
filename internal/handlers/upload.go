// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /upload
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.InvalidParams(c, "")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.InvalidParams(c, "")
		return
	}
	defer file.Close()

	url, err := h.storageService.SaveImage(c.Request.Context(), file, header)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, models.UploadResult{URL: url})
}
