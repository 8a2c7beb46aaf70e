// internal/services/home_service.go
package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yycy134679/school-secondhand-trading-system/internal/cache"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

const (
	recommendationCount    = 10
	recommendationCacheTTL = 10 * time.Minute
	recentViewsForRecs     = 20
)

// HomeService assembles the home feed: the latest for-sale listings plus a
// per-user recommendation strip derived from recently viewed tags.
type HomeService struct {
	db       *gorm.DB
	cache    *cache.Cache
	products *ProductService
}

func NewHomeService(db *gorm.DB, c *cache.Cache, products *ProductService) *HomeService {
	return &HomeService{db: db, cache: c, products: products}
}

func recommendationCacheKey(userID int64) string {
	return "home:recommendations:" + strconv.FormatInt(userID, 10)
}

// HomeData builds the aggregated home payload. An anonymous viewer gets
// popular products as recommendations.
func (s *HomeService) HomeData(ctx context.Context, viewerID *int64, page, pageSize int) (*models.HomeData, error) {
	latest, total, err := s.products.Search(ctx, models.SearchParams{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}

	var recommendations []models.Product
	if viewerID != nil {
		recommendations, err = s.Recommendations(ctx, *viewerID, recommendationCount)
	} else {
		recommendations, err = s.popularProducts(ctx, recommendationCount)
	}
	if err != nil {
		return nil, err
	}

	return &models.HomeData{
		Recommendations: toHomeProducts(recommendations),
		Latest:          toHomeProducts(latest),
		TotalCount:      total,
	}, nil
}

// Recommendations returns products matching the tags the user viewed most,
// excluding their own listings and products they already opened. Results are
// cached for ten minutes.
func (s *HomeService) Recommendations(ctx context.Context, userID int64, maxCount int) ([]models.Product, error) {
	if val, ok := s.cache.Get(recommendationCacheKey(userID)); ok {
		if ids, ok := val.([]int64); ok {
			return s.productsByIDs(ctx, ids)
		}
	}

	ids, err := s.generateRecommendations(ctx, userID, maxCount)
	if err != nil {
		return nil, err
	}
	s.cache.Set(recommendationCacheKey(userID), ids, recommendationCacheTTL)
	return s.productsByIDs(ctx, ids)
}

func (s *HomeService) generateRecommendations(ctx context.Context, userID int64, maxCount int) ([]int64, error) {
	var views []models.ViewRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(recentViewsForRecs).
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return s.popularProductIDs(ctx, maxCount)
	}

	// Count tag frequency over the recently viewed products.
	tagFreq := make(map[int64]int)
	excludeIDs := map[int64]struct{}{}
	for _, v := range views {
		excludeIDs[v.ProductID] = struct{}{}
		var p models.Product
		if err := s.db.WithContext(ctx).First(&p, v.ProductID).Error; err != nil {
			continue
		}
		for _, t := range p.TagIDs {
			tagFreq[t]++
		}
	}
	if len(tagFreq) == 0 {
		return s.popularProductIDs(ctx, maxCount)
	}

	type tagCount struct {
		tagID int64
		freq  int
	}
	ranked := make([]tagCount, 0, len(tagFreq))
	for id, f := range tagFreq {
		ranked = append(ranked, tagCount{tagID: id, freq: f})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].freq != ranked[j].freq {
			return ranked[i].freq > ranked[j].freq
		}
		return ranked[i].tagID < ranked[j].tagID
	})

	result := make([]int64, 0, maxCount)
	seen := map[int64]struct{}{}
	for _, tc := range ranked {
		if len(result) >= maxCount {
			break
		}
		candidates, _, err := s.products.Search(ctx, models.SearchParams{
			TagIDs:   []int64{tc.tagID},
			Page:     1,
			PageSize: maxCount,
		})
		if err != nil {
			continue
		}
		for _, p := range candidates {
			if len(result) >= maxCount {
				break
			}
			if p.SellerID == userID {
				continue
			}
			if _, ex := excludeIDs[p.ID]; ex {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			result = append(result, p.ID)
		}
	}

	if len(result) == 0 {
		return s.popularProductIDs(ctx, maxCount)
	}
	return result, nil
}

// popularProducts approximates popularity with the newest for-sale listings.
func (s *HomeService) popularProducts(ctx context.Context, maxCount int) ([]models.Product, error) {
	products, _, err := s.products.Search(ctx, models.SearchParams{Page: 1, PageSize: maxCount})
	return products, err
}

func (s *HomeService) popularProductIDs(ctx context.Context, maxCount int) ([]int64, error) {
	products, err := s.popularProducts(ctx, maxCount)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids, nil
}

func (s *HomeService) productsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	// Preserve the recommendation order.
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.Status == models.ProductForSale {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func toHomeProducts(products []models.Product) []models.HomeProduct {
	out := make([]models.HomeProduct, len(products))
	for i, p := range products {
		out[i] = models.HomeProduct{Product: p}
	}
	return out
}
