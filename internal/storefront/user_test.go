package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yycy134679/school-secondhand-trading-system/internal/client"
	"github.com/yycy134679/school-secondhand-trading-system/internal/models"
)

func TestUserStoreLoginCachesProfile(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		writeEnvelope(t, w, models.CodeSuccess, "OK", models.LoginResponse{
			Token: "tok-1",
			User:  models.User{ID: 3, Account: "alice", Nickname: "小爱", IsAdmin: false},
		})
	})

	store := NewUserStore(api)
	assert.False(t, store.IsLoggedIn())

	user, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "小爱", user.Nickname)

	assert.True(t, store.IsLoggedIn())
	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(3), current.ID)
	assert.False(t, store.IsAdmin())
}

func TestUserStoreRegisterSignsIn(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/register", r.URL.Path)
		writeEnvelope(t, w, models.CodeSuccess, "OK", models.LoginResponse{
			Token: "tok-2",
			User:  models.User{ID: 9, Account: "bob", Nickname: "阿波"},
		})
	})

	store := NewUserStore(api)
	_, err := store.Register(context.Background(), client.RegisterInput{
		Account: "bob", Password: "secret123", Nickname: "阿波",
	})
	require.NoError(t, err)
	assert.True(t, store.IsLoggedIn())
}

func TestUserStoreLogoutClearsEverything(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, models.CodeSuccess, "OK", models.LoginResponse{
			Token: "tok-3",
			User:  models.User{ID: 1, Account: "alice"},
		})
	})

	store := NewUserStore(api)
	_, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	store.Logout()
	assert.False(t, store.IsLoggedIn())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestUserStoreFetchProfileFailureLogsOut(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, models.CodeUnauthenticated, "登录已过期", nil)
	})

	store := NewUserStore(api)
	require.NoError(t, api.SetToken("stale"))
	require.True(t, store.IsLoggedIn())

	err := store.FetchProfile(context.Background())
	require.Error(t, err)
	assert.False(t, store.IsLoggedIn(), "an invalid token ends the session")
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestUserStoreFetchProfileWithoutTokenIsNoop(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without a token")
	})

	store := NewUserStore(api)
	require.NoError(t, store.FetchProfile(context.Background()))
}

func TestUserStoreUpdateProfileRefetches(t *testing.T) {
	nickname := "新昵称"
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/users/profile":
			writeEnvelope(t, w, models.CodeSuccess, "OK", models.User{ID: 4, Nickname: nickname})
		case r.Method == http.MethodGet && r.URL.Path == "/users/profile":
			writeEnvelope(t, w, models.CodeSuccess, "OK", models.User{ID: 4, Nickname: nickname, IsAdmin: true})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	store := NewUserStore(api)
	require.NoError(t, api.SetToken("tok"))

	require.NoError(t, store.UpdateProfile(context.Background(), client.UpdateProfileInput{Nickname: &nickname}))

	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "新昵称", current.Nickname)
	assert.True(t, store.IsAdmin(), "cache reflects the refetched profile")
}

func TestUserStoreSessionExpiryEventClearsProfile(t *testing.T) {
	calls := 0
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeEnvelope(t, w, models.CodeSuccess, "OK", models.LoginResponse{
				Token: "tok", User: models.User{ID: 2, Account: "alice"},
			})
			return
		}
		writeEnvelope(t, w, models.CodeUnauthenticated, "请先登录", nil)
	})

	store := NewUserStore(api)
	_, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	// Any endpoint reporting 1002 evicts the cached profile via the
	// unauthorized hook, not just FetchProfile.
	_, err = api.RecentViews(context.Background(), 1, 10)
	require.Error(t, err)

	assert.False(t, store.IsLoggedIn())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}
