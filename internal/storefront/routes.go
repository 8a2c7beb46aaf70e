// internal/storefront/routes.go
package storefront

import (
	"net/url"
	"strings"
)

// Route is one entry of the storefront navigation table. Paths may contain
// ":param" segments.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
}

// Routes lists the storefront navigation table. Selling and profile pages
// require a signed-in user; browsing does not.
func Routes() []Route {
	return []Route{
		{Path: "/", Name: "home", Title: "首页"},
		{Path: "/search", Name: "search", Title: "搜索结果"},
		{Path: "/category/:id", Name: "category", Title: "分类浏览"},
		{Path: "/products/new", Name: "product-new", Title: "发布闲置", RequiresAuth: true},
		{Path: "/products/:id", Name: "product-detail", Title: "商品详情"},
		{Path: "/products/:id/edit", Name: "product-edit", Title: "编辑商品", RequiresAuth: true},
		{Path: "/my/products", Name: "my-products", Title: "我发布的", RequiresAuth: true},
		{Path: "/profile", Name: "profile", Title: "个人中心", RequiresAuth: true},
		{Path: "/login", Name: "login", Title: "登录"},
		{Path: "/register", Name: "register", Title: "注册"},
	}
}

const siteName = "校园二手交易平台"

// DefaultLanding is where an authenticated visit to /login or /register ends
// up when no redirect target was carried.
const DefaultLanding = "/"

// PageTitle builds the window title for a path.
func PageTitle(path string) string {
	if r, ok := MatchRoute(path); ok && r.Title != "" {
		return r.Title + " - " + siteName
	}
	return siteName
}

// MatchRoute resolves a concrete path against the route table. Static paths
// win over ":param" patterns.
func MatchRoute(path string) (Route, bool) {
	for _, r := range Routes() {
		if r.Path == path {
			return r, true
		}
	}
	for _, r := range Routes() {
		if matchPattern(r.Path, path) {
			return r, true
		}
	}
	return Route{}, false
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return true
}

// Navigation describes an attempted navigation.
type Navigation struct {
	Path     string // concrete path being visited
	FullPath string // path including query, preserved as the redirect target
	Redirect string // value of an incoming ?redirect= parameter, if any
}

// GuardNavigation applies the navigation guard: guarded paths bounce an
// unauthenticated visitor to /login carrying the intended target, and a
// signed-in visitor never sees /login or /register again. The returned bool
// reports whether a redirect happened.
func GuardNavigation(loggedIn bool, nav Navigation) (string, bool) {
	r, ok := MatchRoute(nav.Path)
	if !loggedIn && ok && r.RequiresAuth {
		target := nav.FullPath
		if target == "" {
			target = nav.Path
		}
		q := url.Values{}
		q.Set("redirect", target)
		return "/login?" + q.Encode(), true
	}

	if loggedIn && (nav.Path == "/login" || nav.Path == "/register") {
		if nav.Redirect != "" {
			return nav.Redirect, true
		}
		return DefaultLanding, true
	}

	return nav.Path, false
}
