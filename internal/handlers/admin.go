// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

// AdminHandler serves the console's dashboard and moderation endpoints.
// All of its routes sit behind AuthRequired plus AdminRequired.
type AdminHandler struct {
	adminService   *services.AdminService
	productService *services.ProductService
}

func NewAdminHandler(adminService *services.AdminService, productService *services.ProductService) *AdminHandler {
	return &AdminHandler{adminService: adminService, productService: productService}
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, stats)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPageParams(c)
	users, total, err := h.adminService.ListUsers(c.Request.Context(), c.Query("keyword"), params.Page, params.PageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, models.PageResult[models.User]{
		Items: users, Page: params.Page, PageSize: params.PageSize, Total: total,
	})
}

// GET /admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	params := utils.GetPageParams(c)
	filter := services.AdminProductFilter{
		Status:   c.Query("status"),
		SellerID: queryInt64(c, "sellerId"),
		Keyword:  c.Query("keyword"),
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	products, total, err := h.adminService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, models.PageResult[services.AdminProduct]{
		Items: products, Page: params.Page, PageSize: params.PageSize, Total: total,
	})
}

// adminUpdateProductRequest carries the status field separately so its
// presence can be rejected: moderation edits content, never the listing
// lifecycle, which stays with the seller and the undo window.
type adminUpdateProductRequest struct {
	services.UpdateProductRequest
	Status *string `json:"status"`
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req adminUpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}
	if req.Status != nil {
		utils.InvalidParams(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductStatusImmutable))
		return
	}

	userID, _ := utils.GetUserIDFromContext(c)
	product, err := h.productService.Update(c.Request.Context(), userID, id, req.UpdateProductRequest, true)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, product)
}
