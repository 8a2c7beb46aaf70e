// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// POST /users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, resp)
}

// POST /users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req.Account, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, resp)
}
