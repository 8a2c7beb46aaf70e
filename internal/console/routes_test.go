// internal/console/routes_test.go
package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	target, redirected := GuardNavigation(false, Navigation{
		Path:     "/admin/products",
		FullPath: "/admin/products?page=2",
	})
	assert.True(t, redirected)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fproducts%3Fpage%3D2", target)
}

func TestGuardFallsBackToPathAsRedirectTarget(t *testing.T) {
	target, redirected := GuardNavigation(false, Navigation{Path: "/admin"})
	assert.True(t, redirected)
	assert.Equal(t, "/login?redirect=%2Fadmin", target)
}

func TestGuardAllowsPublicRoutes(t *testing.T) {
	target, redirected := GuardNavigation(false, Navigation{Path: "/login"})
	assert.False(t, redirected)
	assert.Equal(t, "/login", target)

	_, redirected = GuardNavigation(false, Navigation{Path: "/register"})
	assert.False(t, redirected)
}

func TestGuardBouncesAuthenticatedOffLogin(t *testing.T) {
	target, redirected := GuardNavigation(true, Navigation{Path: "/login", Redirect: "/admin/users"})
	assert.True(t, redirected)
	assert.Equal(t, "/admin/users", target)

	target, redirected = GuardNavigation(true, Navigation{Path: "/register"})
	assert.True(t, redirected)
	assert.Equal(t, DefaultLanding, target)
}

func TestGuardUnlistedAdminPathInheritsGuard(t *testing.T) {
	_, redirected := GuardNavigation(false, Navigation{Path: "/admin/announcements"})
	assert.True(t, redirected)

	_, redirected = GuardNavigation(true, Navigation{Path: "/admin/announcements"})
	assert.False(t, redirected)
}
