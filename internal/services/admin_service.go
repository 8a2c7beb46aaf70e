// internal/services/admin_service.go
package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
	"github.com/yycy134679/school-secondhand-trading-system/internal/utils"
)

// AdminService backs the console's operational views: site totals plus the
// cross-seller user and product lists that the regular services scope to
// the caller.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type DashboardStats struct {
	UserCount    int64 `json:"userCount"`
	ProductCount int64 `json:"productCount"`
	ForSaleCount int64 `json:"forSaleCount"`
	SoldCount    int64 `json:"soldCount"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)

	var stats DashboardStats
	if err := db.Model(&models.User{}).Count(&stats.UserCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Where("status = ?", models.ProductForSale).Count(&stats.ForSaleCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Where("status = ?", models.ProductSold).Count(&stats.SoldCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers pages through every account, optionally filtered by a keyword
// matched against account and nickname.
func (s *AdminService) ListUsers(ctx context.Context, keyword string, page, pageSize int) ([]models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("account ILIKE ? OR nickname ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := utils.ApplyPagination(q.Order("id"), utils.PageParams{Page: page, PageSize: pageSize}).
		Find(&users).Error
	return users, total, err
}

// AdminProduct is the console's listing row: the product joined with its
// seller identity and category name.
type AdminProduct struct {
	ID             int64                `json:"id"`
	Title          string               `json:"title"`
	Price          float64              `json:"price"`
	Status         models.ProductStatus `json:"status"`
	SellerID       int64                `json:"sellerId"`
	SellerAccount  string               `json:"sellerAccount"`
	SellerNickname string               `json:"sellerNickname"`
	CategoryID     int64                `json:"categoryId"`
	CategoryName   string               `json:"categoryName"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type AdminProductFilter struct {
	Status   string
	SellerID int64
	Keyword  string
	Page     int
	PageSize int
}

// ListProducts pages through listings of every seller and status.
func (s *AdminService) ListProducts(ctx context.Context, filter AdminProductFilter) ([]AdminProduct, int64, error) {
	if filter.Status != "" {
		switch models.ProductStatus(filter.Status) {
		case models.ProductForSale, models.ProductSold, models.ProductDelisted:
		default:
			return nil, 0, invalidParams(i18n.KeyInvalidParams)
		}
	}

	q := s.db.WithContext(ctx).Model(&models.Product{}).
		Joins("LEFT JOIN users ON users.id = products.seller_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")
	if filter.Status != "" {
		q = q.Where("products.status = ?", filter.Status)
	}
	if filter.SellerID > 0 {
		q = q.Where("products.seller_id = ?", filter.SellerID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		q = q.Where("products.title ILIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Select("products.id, products.title, products.price, products.status, " +
		"products.seller_id, users.account AS seller_account, users.nickname AS seller_nickname, " +
		"products.category_id, categories.name AS category_name, " +
		"products.created_at, products.updated_at")

	rows := make([]AdminProduct, 0)
	err := utils.ApplyPagination(q.Order("products.created_at DESC"), utils.PageParams{Page: filter.Page, PageSize: filter.PageSize}).
		Scan(&rows).Error
	return rows, total, err
}
