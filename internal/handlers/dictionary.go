// internal/handlers/dictionary.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type DictionaryHandler struct {
	dictService *services.DictionaryService
}

func NewDictionaryHandler(dictService *services.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{dictService: dictService}
}

// GET /categories
func (h *DictionaryHandler) Categories(c *gin.Context) {
	categories, err := h.dictService.Categories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, categories)
}

// GET /tags
func (h *DictionaryHandler) Tags(c *gin.Context) {
	tags, err := h.dictService.Tags(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, tags)
}

// GET /product-conditions
func (h *DictionaryHandler) Conditions(c *gin.Context) {
	conditions, err := h.dictService.Conditions(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, conditions)
}

// POST /admin/categories
func (h *DictionaryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	if err := h.dictService.CreateCategory(c.Request.Context(), &category); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, category)
}

// PUT /admin/categories/:id
func (h *DictionaryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	category.ID = id
	if err := h.dictService.UpdateCategory(c.Request.Context(), &category); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, category)
}

// DELETE /admin/categories/:id
func (h *DictionaryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dictService.DeleteCategory(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}

// POST /admin/tags
func (h *DictionaryHandler) CreateTag(c *gin.Context) {
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	if err := h.dictService.CreateTag(c.Request.Context(), &tag); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, tag)
}

// PUT /admin/tags/:id
func (h *DictionaryHandler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	tag.ID = id
	if err := h.dictService.UpdateTag(c.Request.Context(), &tag); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, tag)
}

// DELETE /admin/tags/:id
func (h *DictionaryHandler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dictService.DeleteTag(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, nil)
}
