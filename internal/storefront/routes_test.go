package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRouteStaticBeatsParam(t *testing.T) {
	r, ok := MatchRoute("/products/new")
	require.True(t, ok)
	assert.Equal(t, "product-new", r.Name)

	r, ok = MatchRoute("/products/42")
	require.True(t, ok)
	assert.Equal(t, "product-detail", r.Name)

	r, ok = MatchRoute("/products/42/edit")
	require.True(t, ok)
	assert.Equal(t, "product-edit", r.Name)

	_, ok = MatchRoute("/nowhere")
	assert.False(t, ok)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "首页 - 校园二手交易平台", PageTitle("/"))
	assert.Equal(t, "商品详情 - 校园二手交易平台", PageTitle("/products/42"))
	assert.Equal(t, "校园二手交易平台", PageTitle("/nowhere"))
}

func TestGuardRedirectsAnonymousFromGuardedRoute(t *testing.T) {
	target, redirected := GuardNavigation(false, Navigation{
		Path:     "/my/products",
		FullPath: "/my/products?page=2",
	})
	assert.True(t, redirected)
	assert.Equal(t, "/login?redirect=%2Fmy%2Fproducts%3Fpage%3D2", target)
}

func TestGuardFallsBackToPathWithoutFullPath(t *testing.T) {
	target, redirected := GuardNavigation(false, Navigation{Path: "/profile"})
	assert.True(t, redirected)
	assert.Equal(t, "/login?redirect=%2Fprofile", target)
}

func TestGuardAllowsAnonymousBrowsing(t *testing.T) {
	for _, path := range []string{"/", "/search", "/category/3", "/products/42", "/login", "/register"} {
		target, redirected := GuardNavigation(false, Navigation{Path: path})
		assert.False(t, redirected, path)
		assert.Equal(t, path, target)
	}
}

func TestGuardBouncesAuthenticatedFromLogin(t *testing.T) {
	target, redirected := GuardNavigation(true, Navigation{Path: "/login", Redirect: "/my/products"})
	assert.True(t, redirected)
	assert.Equal(t, "/my/products", target)

	target, redirected = GuardNavigation(true, Navigation{Path: "/register"})
	assert.True(t, redirected)
	assert.Equal(t, DefaultLanding, target)
}

func TestGuardAllowsAuthenticatedEverywhereElse(t *testing.T) {
	target, redirected := GuardNavigation(true, Navigation{Path: "/products/7/edit"})
	assert.False(t, redirected)
	assert.Equal(t, "/products/7/edit", target)
}
