// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yycy134679/school-secondhand-trading-system/internal/cache"
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

const (
	undoWindow     = 3 * time.Second
	detailCacheTTL = 5 * time.Minute
)

type ProductService struct {
	db      *gorm.DB
	cache   *cache.Cache
	storage *StorageService
}

func NewProductService(db *gorm.DB, c *cache.Cache, storage *StorageService) *ProductService {
	return &ProductService{db: db, cache: c, storage: storage}
}

type CreateProductRequest struct {
	Title       string
	Description string
	Price       float64
	CategoryID  int64
	ConditionID int64
	TagIDs      []int64
	Images      []*multipart.FileHeader
	// PrimaryImageIndex marks which upload becomes the main image.
	PrimaryImageIndex *int
}

type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int64   `json:"categoryId"`
	ConditionID *int64   `json:"conditionId"`
	// The frontends send tag ids as a comma-separated string.
	TagIDs    string   `json:"tagIds"`
	ImageURLs []string `json:"imageUrls"`
}

type statusChangeRecord struct {
	From   models.ProductStatus
	To     models.ProductStatus
	UserID int64
}

func statusCacheKey(productID int64) string {
	return "product:status:undo:" + strconv.FormatInt(productID, 10)
}

func detailCacheKey(productID int64) string {
	return "product:detail:" + strconv.FormatInt(productID, 10)
}

// Create publishes a new listing. The seller must have a wechat id on file
// and at least one image is required.
func (s *ProductService) Create(ctx context.Context, userID int64, req CreateProductRequest) (*models.Product, error) {
	var seller models.User
	if err := s.db.WithContext(ctx).First(&seller, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidParams(i18n.KeyUserNotFound)
		}
		return nil, err
	}
	if strings.TrimSpace(seller.WechatID) == "" {
		return nil, invalidParams(i18n.KeyInvalidParams)
	}

	if strings.TrimSpace(req.Title) == "" || req.Price <= 0 {
		return nil, invalidParams(i18n.KeyInvalidParams)
	}
	if len(req.Images) == 0 {
		return nil, invalidParams(i18n.KeyInvalidParams)
	}

	primaryIndex := 0
	if req.PrimaryImageIndex != nil && *req.PrimaryImageIndex >= 0 && *req.PrimaryImageIndex < len(req.Images) {
		primaryIndex = *req.PrimaryImageIndex
	}

	images := make([]models.ProductImage, 0, len(req.Images))
	for i, header := range req.Images {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		url, err := s.storage.SaveImage(ctx, file, header)
		file.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, models.ProductImage{
			URL:       url,
			SortOrder: i + 1,
			IsPrimary: i == primaryIndex,
		})
	}

	product := models.Product{
		SellerID:     userID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		ConditionID:  req.ConditionID,
		TagIDs:       pq.Int64Array(req.TagIDs),
		Status:       models.ProductForSale,
		MainImageURL: images[primaryIndex].URL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ProductID = product.ID
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}

	product.Images = images
	return &product, nil
}

// Update edits a listing. Only the seller (or an admin) may edit, and sold
// listings are locked for non-admins.
func (s *ProductService) Update(ctx context.Context, userID, productID int64, req UpdateProductRequest, isAdmin bool) (*models.Product, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && product.SellerID != userID {
		return nil, forbidden(i18n.KeyProductEditForbidden)
	}
	if product.Status == models.ProductSold && !isAdmin {
		return nil, invalidParams(i18n.KeyProductSoldLocked)
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil && *req.Price > 0 {
		product.Price = *req.Price
	}
	if req.CategoryID != nil && *req.CategoryID > 0 {
		product.CategoryID = *req.CategoryID
	}
	if req.ConditionID != nil && *req.ConditionID > 0 {
		product.ConditionID = *req.ConditionID
	}
	if req.TagIDs != "" {
		product.TagIDs = pq.Int64Array(parseTagIDs(req.TagIDs))
	}

	var images []models.ProductImage
	var oldImages []models.ProductImage
	if len(req.ImageURLs) > 0 {
		if err := s.db.WithContext(ctx).Where("product_id = ?", product.ID).Find(&oldImages).Error; err != nil {
			return nil, err
		}
		images = make([]models.ProductImage, 0, len(req.ImageURLs))
		for i, url := range req.ImageURLs {
			images = append(images, models.ProductImage{
				ProductID: product.ID,
				URL:       url,
				SortOrder: i + 1,
				IsPrimary: i == 0,
			})
		}
		product.MainImageURL = images[0].URL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		if images != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stored files for dropped images are removed best effort.
	if images != nil {
		kept := make(map[string]struct{}, len(req.ImageURLs))
		for _, url := range req.ImageURLs {
			kept[url] = struct{}{}
		}
		for _, old := range oldImages {
			if _, ok := kept[old.URL]; ok {
				continue
			}
			if err := s.storage.DeleteByURL(old.URL); err != nil {
				logrus.WithError(err).WithField("url", old.URL).Warn("failed to delete replaced image")
			}
		}
	}

	s.cache.Delete(detailCacheKey(product.ID))
	return product, nil
}

// ChangeStatus applies a seller action (delist, relist, sold) and opens a
// short undo window.
func (s *ProductService) ChangeStatus(ctx context.Context, userID, productID int64, action models.StatusAction) (*models.Product, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, forbidden(i18n.KeyProductEditForbidden)
	}

	fromStatus := product.Status
	var toStatus models.ProductStatus
	switch action {
	case models.ActionDelist:
		if fromStatus != models.ProductForSale {
			return nil, invalidParams(i18n.KeyProductCannotDelist)
		}
		toStatus = models.ProductDelisted
	case models.ActionRelist:
		if fromStatus != models.ProductDelisted {
			return nil, invalidParams(i18n.KeyProductCannotRelist)
		}
		toStatus = models.ProductForSale
	case models.ActionSold:
		if fromStatus != models.ProductForSale {
			return nil, invalidParams(i18n.KeyProductCannotSell)
		}
		toStatus = models.ProductSold
	default:
		return nil, invalidParams(i18n.KeyProductInvalidAction)
	}

	if err := s.updateStatus(ctx, product, fromStatus, toStatus); err != nil {
		return nil, err
	}

	s.cache.Set(statusCacheKey(productID), statusChangeRecord{
		From:   fromStatus,
		To:     toStatus,
		UserID: userID,
	}, undoWindow)

	return product, nil
}

// UndoStatusChange reverts the last status change while its undo window is
// still open.
func (s *ProductService) UndoStatusChange(ctx context.Context, userID, productID int64) (*models.Product, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, forbidden(i18n.KeyProductEditForbidden)
	}

	val, ok := s.cache.Get(statusCacheKey(productID))
	if !ok {
		return nil, invalidParams(i18n.KeyProductUndoTimeout)
	}
	record, ok := val.(statusChangeRecord)
	if !ok || record.UserID != userID || product.Status != record.To {
		return nil, invalidParams(i18n.KeyProductUndoTimeout)
	}

	if err := s.updateStatus(ctx, product, record.To, record.From); err != nil {
		return nil, err
	}

	s.cache.Delete(statusCacheKey(productID))
	return product, nil
}

// updateStatus flips the row only when it still holds fromStatus, so a
// concurrent change loses instead of silently overwriting.
func (s *ProductService) updateStatus(ctx context.Context, product *models.Product, from, to models.ProductStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND status = ?", product.ID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidParams(i18n.KeyProductInvalidAction)
	}
	product.Status = to
	s.cache.Delete(detailCacheKey(product.ID))
	return nil
}

// Detail assembles the detail page payload. The viewer-independent part is
// cached; seller contact is only exposed to the seller.
func (s *ProductService) Detail(ctx context.Context, productID int64, viewerID *int64) (*models.ProductDetail, error) {
	product, images, err := s.cachedProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var condition models.ProductCondition
	if err := s.db.WithContext(ctx).First(&condition, product.ConditionID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var seller models.User
	if err := s.db.WithContext(ctx).First(&seller, product.SellerID).Error; err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{
		Product:       *product,
		ConditionName: condition.Name,
		Seller: models.SellerInfo{
			ID:        seller.ID,
			Nickname:  seller.Nickname,
			AvatarURL: seller.AvatarURL,
		},
	}
	detail.Images = images

	if viewerID != nil && *viewerID == product.SellerID {
		detail.ViewerIsSeller = true
		wechat := seller.WechatID
		detail.SellerWechat = &wechat
	}

	return detail, nil
}

func (s *ProductService) cachedProduct(ctx context.Context, productID int64) (*models.Product, []models.ProductImage, error) {
	type cachedDetail struct {
		Product models.Product
		Images  []models.ProductImage
	}

	if val, ok := s.cache.Get(detailCacheKey(productID)); ok {
		if cd, ok := val.(cachedDetail); ok {
			return &cd.Product, cd.Images, nil
		}
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	var images []models.ProductImage
	if err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order").
		Find(&images).Error; err != nil {
		return nil, nil, err
	}

	s.cache.Set(detailCacheKey(productID), cachedDetail{Product: *product, Images: images}, detailCacheTTL)
	return product, images, nil
}

// Contact answers whether the viewer may contact the seller and with what.
func (s *ProductService) Contact(ctx context.Context, productID int64, viewerID *int64, lang string) (*models.ContactInfo, error) {
	if viewerID == nil {
		return &models.ContactInfo{
			CanContact: false,
			Tips:       i18n.T(lang, i18n.KeyContactLoginRequired),
		}, nil
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == *viewerID {
		return &models.ContactInfo{CanContact: false}, nil
	}
	if product.Status != models.ProductForSale {
		return &models.ContactInfo{
			CanContact: false,
			Tips:       i18n.T(lang, i18n.KeyContactNotForSale),
		}, nil
	}

	var seller models.User
	if err := s.db.WithContext(ctx).First(&seller, product.SellerID).Error; err != nil {
		return nil, err
	}

	wechat := strings.TrimSpace(seller.WechatID)
	if wechat == "" {
		return &models.ContactInfo{
			CanContact: false,
			Tips:       i18n.T(lang, i18n.KeyContactUnavailable),
		}, nil
	}

	return &models.ContactInfo{
		CanContact:   true,
		SellerWechat: wechat,
		Tips:         i18n.T(lang, i18n.KeyContactSafetyTips),
	}, nil
}

// MyProducts lists the seller's own listings in every status.
func (s *ProductService) MyProducts(ctx context.Context, userID int64, keyword string, page, pageSize int) ([]models.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{}).Where("seller_id = ?", userID)
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		q = q.Where("title ILIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := utils.ApplyPagination(q.Order("created_at DESC"), utils.PageParams{Page: page, PageSize: pageSize}).
		Find(&products).Error
	return products, total, err
}

// Search lists for-sale products matching the filters.
func (s *ProductService) Search(ctx context.Context, params models.SearchParams) ([]models.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{}).Where("status = ?", models.ProductForSale)

	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if params.CategoryID > 0 {
		q = q.Where("category_id = ?", params.CategoryID)
	}
	if len(params.TagIDs) > 0 {
		q = q.Where("tag_ids && ?", pq.Int64Array(params.TagIDs))
	}
	if len(params.ConditionIDs) > 0 {
		q = q.Where("condition_id IN ?", params.ConditionIDs)
	}
	if params.MinPrice != nil {
		q = q.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		q = q.Where("price <= ?", *params.MaxPrice)
	}
	if cutoff, ok := publishedCutoff(params.PublishedTimeRange); ok {
		q = q.Where("created_at >= ?", cutoff)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch params.Sort {
	case "price_asc":
		q = q.Order("price ASC")
	case "price_desc":
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var products []models.Product
	err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error
	return products, total, err
}

// ByCategory is Search scoped to one category.
func (s *ProductService) ByCategory(ctx context.Context, categoryID int64, params models.SearchParams) ([]models.Product, int64, error) {
	params.CategoryID = categoryID
	return s.Search(ctx, params)
}

// RecordView upserts the user/product view row, refreshing viewed_at on a
// repeat view.
func (s *ProductService) RecordView(ctx context.Context, userID, productID int64) error {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return err
	}

	record := models.ViewRecord{
		UserID:    userID,
		ProductID: productID,
		ViewedAt:  time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
	}).Create(&record).Error
}

// RecentViews pages through the products the user opened, newest first.
func (s *ProductService) RecentViews(ctx context.Context, userID int64, page, pageSize int) ([]models.ViewedProduct, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.ViewRecord{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.ViewRecord
	err := utils.ApplyPagination(base.Order("viewed_at DESC"), utils.PageParams{Page: page, PageSize: pageSize}).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	viewed := make([]models.ViewedProduct, 0, len(records))
	for _, r := range records {
		var product models.Product
		if err := s.db.WithContext(ctx).First(&product, r.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, 0, err
		}
		viewed = append(viewed, models.ViewedProduct{Product: product, ViewedAt: r.ViewedAt})
	}
	return viewed, total, nil
}

func (s *ProductService) loadProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidParams(i18n.KeyProductNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func parseTagIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if id, err := strconv.ParseInt(p, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func publishedCutoff(timeRange string) (time.Time, bool) {
	var days int
	switch timeRange {
	case "1d":
		days = 1
	case "7d":
		days = 7
	case "30d":
		days = 30
	default:
		return time.Time{}, false
	}
	return time.Now().AddDate(0, 0, -days), true
}
