// internal/storefront/user.go
package storefront

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yycy134679/school-secondhand-trading-system/internal/client"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

// UserStore tracks the signed-in storefront user. The bearer token itself
// lives in the API client's token slot; this store caches the profile and
// reacts to session-expiry events.
type UserStore struct {
	api *client.Client

	mu      sync.RWMutex
	current *models.User
}

func NewUserStore(api *client.Client) *UserStore {
	s := &UserStore{api: api}
	// A 1002 from any endpoint means the token is dead.
	api.OnUnauthorized(s.clearCurrent)
	return s
}

func (s *UserStore) IsLoggedIn() bool {
	_, ok := s.api.Token()
	return ok
}

func (s *UserStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin
}

// CurrentUser returns the cached profile, or false when nobody is signed in
// or the profile has not been fetched yet.
func (s *UserStore) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Login signs in and caches the returned profile. The token is persisted by
// the API client.
func (s *UserStore) Login(ctx context.Context, account, password string) (models.User, error) {
	res, err := s.api.Login(ctx, account, password)
	if err != nil {
		return models.User{}, err
	}
	s.setCurrent(res.User)
	return res.User, nil
}

// Register creates an account and signs the caller in.
func (s *UserStore) Register(ctx context.Context, in client.RegisterInput) (models.User, error) {
	res, err := s.api.Register(ctx, in)
	if err != nil {
		return models.User{}, err
	}
	s.setCurrent(res.User)
	return res.User, nil
}

func (s *UserStore) Logout() {
	s.api.ClearToken()
	s.clearCurrent()
}

// FetchProfile refreshes the cached profile. A failure is treated as an
// invalid token: the session is cleared and the error returned.
func (s *UserStore) FetchProfile(ctx context.Context) error {
	if !s.IsLoggedIn() {
		return nil
	}
	user, err := s.api.Profile(ctx)
	if err != nil {
		logrus.WithError(err).Warn("profile fetch failed, clearing session")
		s.Logout()
		return err
	}
	s.setCurrent(user)
	return nil
}

// UpdateProfile applies the change and refetches the profile so the cache
// reflects what the backend actually stored.
func (s *UserStore) UpdateProfile(ctx context.Context, in client.UpdateProfileInput) error {
	if _, err := s.api.UpdateProfile(ctx, in); err != nil {
		return err
	}
	return s.FetchProfile(ctx)
}

func (s *UserStore) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.api.ChangePassword(ctx, oldPassword, newPassword)
}

// RecentViews lists the products the user opened most recently.
func (s *UserStore) RecentViews(ctx context.Context, page, pageSize int) (models.PageResult[models.ViewedProduct], error) {
	return s.api.RecentViews(ctx, page, pageSize)
}

func (s *UserStore) setCurrent(u models.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
}

func (s *UserStore) clearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
