// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type ProductStatus string

const (
	ProductForSale  ProductStatus = "ForSale"
	ProductSold     ProductStatus = "Sold"
	ProductDelisted ProductStatus = "Delisted"
)

// StatusAction is the verb a seller applies to a listing.
type StatusAction string

const (
	ActionDelist StatusAction = "delist"
	ActionRelist StatusAction = "relist"
	ActionSold   StatusAction = "sold"
)

type Product struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	SellerID     int64          `json:"sellerId" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"size:100;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	MainImageURL string         `json:"mainImageUrl" gorm:"size:255"`
	Status       ProductStatus  `json:"status" gorm:"type:varchar(20);default:'ForSale';index"`
	ConditionID  int64          `json:"conditionId" gorm:"index"`
	CategoryID   int64          `json:"categoryId" gorm:"index"`
	TagIDs       pq.Int64Array  `json:"tagIds,omitempty" gorm:"type:bigint[]"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Images       []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

type ProductImage struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID int64  `json:"productId" gorm:"not null;index"`
	URL       string `json:"url" gorm:"size:255;not null"`
	SortOrder int    `json:"sortOrder" gorm:"default:0"`
	IsPrimary bool   `json:"isPrimary" gorm:"default:false"`
}

// SellerInfo is the public slice of the seller exposed on a detail page.
type SellerInfo struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// ProductDetail joins a product with its condition, images and seller.
type ProductDetail struct {
	Product
	ConditionName  string     `json:"conditionName"`
	Seller         SellerInfo `json:"seller"`
	ViewerIsSeller bool       `json:"viewerIsSeller"`
	SellerWechat   *string    `json:"sellerWechat"`
}

// ContactInfo answers "can I contact the seller, and how".
type ContactInfo struct {
	CanContact   bool   `json:"canContact"`
	SellerWechat string `json:"sellerWechat,omitempty"`
	Tips         string `json:"tips,omitempty"`
}

// SearchParams carries every filter the search endpoint accepts.
type SearchParams struct {
	Keyword            string
	CategoryID         int64
	TagIDs             []int64
	ConditionIDs       []int64
	MinPrice           *float64
	MaxPrice           *float64
	PublishedTimeRange string
	Sort               string
	Page               int
	PageSize           int
}
