// internal/storefront/app.go

// Package storefront holds the client-side state of the public marketplace
// site: dictionary data, product caches and the signed-in user. Stores wrap
// the REST client and hold the last decoded responses behind a mutex so view
// code can read them at any time.
package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/client"
	"github.com/yycy134679/school-secondhand-trading-system/internal/i18n"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// AppStore caches the dictionary data (categories, tags, product conditions)
// used to populate forms and filters.
type AppStore struct {
	api  *client.Client
	lang string

	mu         sync.RWMutex
	loading    bool
	loadErr    string
	categories []models.Category
	tags       []models.Tag
	conditions []models.ProductCondition
}

func NewAppStore(api *client.Client, lang string) *AppStore {
	return &AppStore{api: api, lang: lang}
}

// InitDictionaries fetches all three dictionaries in parallel. A failed fetch
// leaves that dictionary empty and contributes a localized error string; the
// other fetches still land. The combined error text is available via Err.
func (s *AppStore) InitDictionaries(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.loadErr = ""
	s.mu.Unlock()

	var (
		wg                                  sync.WaitGroup
		categories                          []models.Category
		tags                                []models.Tag
		conditions                          []models.ProductCondition
		categoriesErr, tagsErr, conditionsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		categories, categoriesErr = s.api.Categories(ctx)
	}()
	go func() {
		defer wg.Done()
		tags, tagsErr = s.api.Tags(ctx)
	}()
	go func() {
		defer wg.Done()
		conditions, conditionsErr = s.api.ProductConditions(ctx)
	}()
	wg.Wait()

	var errs []string
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if categoriesErr != nil {
		errs = append(errs, i18n.T(s.lang, i18n.KeyDictCategoriesFailed))
		logrus.WithError(categoriesErr).Error("failed to load categories")
	} else {
		s.categories = categories
	}
	if tagsErr != nil {
		errs = append(errs, i18n.T(s.lang, i18n.KeyDictTagsFailed))
		logrus.WithError(tagsErr).Error("failed to load tags")
	} else {
		s.tags = tags
	}
	if conditionsErr != nil {
		errs = append(errs, i18n.T(s.lang, i18n.KeyDictConditionsFailed))
		logrus.WithError(conditionsErr).Error("failed to load product conditions")
	} else {
		s.conditions = conditions
	}

	if len(errs) > 0 {
		s.loadErr = strings.Join(errs, "；")
	}
}

func (s *AppStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the combined error text of the last InitDictionaries run, empty
// when every fetch succeeded.
func (s *AppStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *AppStore) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *AppStore) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Tag(nil), s.tags...)
}

func (s *AppStore) ProductConditions() []models.ProductCondition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProductCondition(nil), s.conditions...)
}

// CategoryName resolves a category id against the cached dictionary.
func (s *AppStore) CategoryName(id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}
