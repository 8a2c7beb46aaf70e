// internal/storefront/product.go
package storefront

import (
	"context"
	"sync"

	"github.com/yycy134679/school-secondhand-trading-system/internal/client"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

const defaultPageSize = 20

// ProductStore caches the home feed, the latest search results and the
// product detail currently on screen.
type ProductStore struct {
	api *client.Client

	mu              sync.RWMutex
	recommendations []models.Product
	homeLatest      models.PageResult[models.Product]
	searchParams    models.SearchParams
	searchResults   models.PageResult[models.Product]
	current         *models.ProductDetail

	// Search requests are sequenced so that a slow response from an older
	// search can never overwrite the results of a newer one.
	searchSeq  uint64
	appliedSeq uint64
}

func NewProductStore(api *client.Client) *ProductStore {
	return &ProductStore{
		api:           api,
		homeLatest:    models.EmptyPage[models.Product](1, defaultPageSize),
		searchResults: models.EmptyPage[models.Product](1, defaultPageSize),
	}
}

func normalizeHomeProduct(hp models.HomeProduct) models.Product {
	p := hp.Product
	if p.MainImageURL == "" {
		p.MainImageURL = hp.MainImage
	}
	return p
}

func normalizeHomeProducts(items []models.HomeProduct) []models.Product {
	out := make([]models.Product, len(items))
	for i, hp := range items {
		out[i] = normalizeHomeProduct(hp)
	}
	return out
}

// FetchHome refreshes the cached home feed. Zero page values fall back to
// page 1 with the default page size.
func (s *ProductStore) FetchHome(ctx context.Context, page, pageSize int) error {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	data, err := s.api.Home(ctx, page, pageSize)
	if err != nil {
		return err
	}

	total := data.TotalCount
	if total == 0 {
		total = int64(len(data.Latest))
	}

	s.mu.Lock()
	s.recommendations = normalizeHomeProducts(data.Recommendations)
	s.homeLatest = models.PageResult[models.Product]{
		Items:    normalizeHomeProducts(data.Latest),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	s.mu.Unlock()
	return nil
}

// Search runs a product search and caches the result. If a newer Search call
// has already been issued by the time the response arrives, the stale result
// is returned to the caller but not cached.
func (s *ProductStore) Search(ctx context.Context, params models.SearchParams) (models.PageResult[models.Product], error) {
	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.searchParams = params
	s.mu.Unlock()

	res, err := s.api.SearchProducts(ctx, params)
	if err != nil {
		return models.EmptyPage[models.Product](pageOr(params.Page, 1), pageOr(params.PageSize, defaultPageSize)), err
	}
	res = withPageDefaults(res, params)

	s.mu.Lock()
	if seq > s.appliedSeq {
		s.appliedSeq = seq
		s.searchResults = res
	}
	s.mu.Unlock()
	return res, nil
}

// CategoryProducts lists a category page. Results are returned to the caller
// without touching the search cache.
func (s *ProductStore) CategoryProducts(ctx context.Context, categoryID int64, params models.SearchParams) (models.PageResult[models.Product], error) {
	res, err := s.api.ProductsByCategory(ctx, categoryID, params)
	if err != nil {
		return models.EmptyPage[models.Product](pageOr(params.Page, 1), pageOr(params.PageSize, defaultPageSize)), err
	}
	return withPageDefaults(res, params), nil
}

// MyProducts lists the caller's own listings.
func (s *ProductStore) MyProducts(ctx context.Context, keyword string, page, pageSize int) (models.PageResult[models.Product], error) {
	res, err := s.api.MyProducts(ctx, keyword, page, pageSize)
	if err != nil {
		return models.EmptyPage[models.Product](pageOr(page, 1), pageOr(pageSize, defaultPageSize)), err
	}
	return res, nil
}

// FetchDetail loads a product detail page and caches it as the current
// product.
func (s *ProductStore) FetchDetail(ctx context.Context, id int64) (models.ProductDetail, error) {
	detail, err := s.api.ProductDetail(ctx, id)
	if err != nil {
		return models.ProductDetail{}, err
	}
	s.mu.Lock()
	s.current = &detail
	s.mu.Unlock()
	return detail, nil
}

// ChangeStatus applies a seller status action. The cached current product is
// updated in place when it is the one being changed.
func (s *ProductStore) ChangeStatus(ctx context.Context, id int64, action models.StatusAction) (models.Product, error) {
	p, err := s.api.ChangeProductStatus(ctx, id, action)
	if err != nil {
		return models.Product{}, err
	}
	s.applyStatus(id, p.Status)
	return p, nil
}

// UndoStatusChange reverts the most recent status change while the backend's
// undo window is still open.
func (s *ProductStore) UndoStatusChange(ctx context.Context, id int64) (models.Product, error) {
	p, err := s.api.UndoStatusChange(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	s.applyStatus(id, p.Status)
	return p, nil
}

func (s *ProductStore) applyStatus(id int64, status models.ProductStatus) {
	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current.Status = status
	}
	s.mu.Unlock()
}

func (s *ProductStore) Recommendations() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.recommendations...)
}

func (s *ProductStore) HomeLatest() models.PageResult[models.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.homeLatest
}

func (s *ProductStore) SearchResults() models.PageResult[models.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchResults
}

func (s *ProductStore) SearchParams() models.SearchParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchParams
}

// CurrentProduct returns a copy of the cached detail, or false when no detail
// page has been loaded.
func (s *ProductStore) CurrentProduct() (models.ProductDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.ProductDetail{}, false
	}
	return *s.current, true
}

func withPageDefaults(res models.PageResult[models.Product], params models.SearchParams) models.PageResult[models.Product] {
	if res.Items == nil {
		res.Items = []models.Product{}
	}
	if res.Page == 0 {
		res.Page = pageOr(params.Page, 1)
	}
	if res.PageSize == 0 {
		res.PageSize = pageOr(params.PageSize, defaultPageSize)
	}
	return res
}

func pageOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
