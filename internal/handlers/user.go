// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	productService *services.ProductService
}

func NewUserHandler(userService *services.UserService, productService *services.ProductService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		productService: productService,
	}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

// PUT /users/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessWithMessage(c, i18n.T(utils.GetLangFromContext(c), i18n.KeySessionChangeSuccess), nil)
}

// GET /users/recent-views
func (h *UserHandler) RecentViews(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	params := utils.GetPageParams(c)

	items, total, err := h.productService.RecentViews(c.Request.Context(), userID, params.Page, params.PageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, models.PageResult[models.ViewedProduct]{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	})
}
