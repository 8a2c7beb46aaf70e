// internal/models/dictionary.go
package models

// Dictionary data: static reference lists fetched once and cached for forms.

type Category struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"size:255"`
	SortOrder   int    `json:"sortOrder" gorm:"default:0"`
}

type Tag struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"size:255"`
}

type ProductCondition struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name      string `json:"name" gorm:"size:50;not null"`
	SortOrder int    `json:"sortOrder" gorm:"default:0"`
}

// Condition codes seeded by the backend.
const (
	ConditionBrandNew    = "BRAND_NEW"
	ConditionNineTenths  = "NINE_TENTHS"
	ConditionEightTenths = "EIGHT_TENTHS"
	ConditionSevenTenths = "SEVEN_TENTHS"
)
