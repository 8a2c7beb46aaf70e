// internal/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/services"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	dictService    *services.DictionaryService
}

func NewProductHandler(productService *services.ProductService, dictService *services.DictionaryService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		dictService:    dictService,
	}
}

// POST /products
//
// The listing form is multipart: scalar fields plus one or more "images"
// file parts.
func (h *ProductHandler) Create(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.InvalidParams(c, "")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.InvalidParams(c, "")
		return
	}
	categoryID, _ := strconv.ParseInt(c.PostForm("categoryId"), 10, 64)
	conditionID, _ := strconv.ParseInt(c.PostForm("conditionId"), 10, 64)

	req := services.CreateProductRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       price,
		CategoryID:  categoryID,
		ConditionID: conditionID,
		TagIDs:      parseIDList(c.PostForm("tagIds")),
		Images:      form.File["images"],
	}
	if raw := c.PostForm("primaryImageIndex"); raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil {
			req.PrimaryImageIndex = &idx
		}
	}

	product, err := h.productService.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, product)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), userID, productID, req, utils.IsAdminFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, product)
}

// POST /products/:id/status
func (h *ProductHandler) ChangeStatus(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Action models.StatusAction `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.InvalidParams(c, "")
		return
	}

	product, err := h.productService.ChangeStatus(c.Request.Context(), userID, productID, req.Action)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, product)
}

// POST /products/:id/status/undo
func (h *ProductHandler) UndoStatusChange(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.UndoStatusChange(c.Request.Context(), userID, productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, product)
}

// GET /products/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.productService.Detail(c.Request.Context(), productID, optionalViewerID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, detail)
}

// POST /products/:id/view
func (h *ProductHandler) RecordView(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.RecordView(c.Request.Context(), userID, productID); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, gin.H{"recorded": true})
}

// GET /products/:id/contact
func (h *ProductHandler) Contact(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	lang := utils.GetLangFromContext(c)
	info, err := h.productService.Contact(c.Request.Context(), productID, optionalViewerID(c), lang)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, info)
}

// GET /products/my
func (h *ProductHandler) MyProducts(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	params := utils.GetPageParams(c)

	items, total, err := h.productService.MyProducts(c.Request.Context(), userID, c.Query("keyword"), params.Page, params.PageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, pageOf(items, params, total))
}

// GET /products/search
func (h *ProductHandler) Search(c *gin.Context) {
	params := searchParams(c)

	items, total, err := h.productService.Search(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, pageOf(items, utils.PageParams{Page: params.Page, PageSize: params.PageSize}, total))
}

// GET /products/category/:id
func (h *ProductHandler) ByCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.dictService.CategoryByID(c.Request.Context(), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}
	params := searchParams(c)

	items, total, err := h.productService.ByCategory(c.Request.Context(), categoryID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.Success(c, pageOf(items, utils.PageParams{Page: params.Page, PageSize: params.PageSize}, total))
}

func searchParams(c *gin.Context) models.SearchParams {
	page := utils.GetPageParams(c)
	return models.SearchParams{
		Keyword:            c.Query("q"),
		CategoryID:         queryInt64(c, "categoryId"),
		TagIDs:             queryInt64List(c, "tagIds"),
		ConditionIDs:       queryInt64List(c, "conditionIds"),
		MinPrice:           queryFloat(c, "minPrice"),
		MaxPrice:           queryFloat(c, "maxPrice"),
		PublishedTimeRange: c.Query("publishedTimeRange"),
		Sort:               c.Query("sort"),
		Page:               page.Page,
		PageSize:           page.PageSize,
	}
}

func pageOf(items []models.Product, params utils.PageParams, total int64) models.PageResult[models.Product] {
	return models.PageResult[models.Product]{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}
}

func parseIDList(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
