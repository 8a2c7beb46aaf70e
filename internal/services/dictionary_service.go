// internal/services/dictionary_service.go
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// DictionaryService serves the static reference lists used by forms and
// filters.
type DictionaryService struct {
	db *gorm.DB
}

func NewDictionaryService(db *gorm.DB) *DictionaryService {
	return &DictionaryService{db: db}
}

func (s *DictionaryService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("sort_order, id").Find(&categories).Error
	return categories, err
}

func (s *DictionaryService) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, err
}

func (s *DictionaryService) Conditions(ctx context.Context) ([]models.ProductCondition, error) {
	var conditions []models.ProductCondition
	err := s.db.WithContext(ctx).Order("sort_order, id").Find(&conditions).Error
	return conditions, err
}

func (s *DictionaryService) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *DictionaryService) UpdateCategory(ctx context.Context, category *models.Category) error {
	res := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"sort_order":  category.SortOrder,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidParams(i18n.KeyInvalidParams)
	}
	return nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *DictionaryService) DeleteCategory(ctx context.Context, id int64) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return invalidParams(i18n.KeyCategoryInUse)
	}

	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidParams(i18n.KeyInvalidParams)
	}
	return nil
}

func (s *DictionaryService) CreateTag(ctx context.Context, tag *models.Tag) error {
	return s.db.WithContext(ctx).Create(tag).Error
}

func (s *DictionaryService) UpdateTag(ctx context.Context, tag *models.Tag) error {
	res := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id = ?", tag.ID).
		Updates(map[string]interface{}{
			"name":        tag.Name,
			"description": tag.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidParams(i18n.KeyInvalidParams)
	}
	return nil
}

func (s *DictionaryService) DeleteTag(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Tag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invalidParams(i18n.KeyInvalidParams)
	}
	return nil
}

func (s *DictionaryService) CategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidParams(i18n.KeyInvalidParams)
		}
		return nil, err
	}
	return &category, nil
}
