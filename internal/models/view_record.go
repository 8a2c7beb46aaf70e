// internal/models/view_record.go
package models

import "time"

// ViewRecord remembers that a user opened a product detail page. One row per
// user/product pair; repeated views refresh ViewedAt.
type ViewRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"not null;uniqueIndex:idx_view_user_product"`
	ProductID int64     `json:"productId" gorm:"not null;uniqueIndex:idx_view_user_product"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// ViewedProduct is a product in the caller's recent-views list, stamped with
// when they last opened it.
type ViewedProduct struct {
	Product
	ViewedAt time.Time `json:"viewedAt"`
}
