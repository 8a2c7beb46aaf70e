// internal/console/routes.go
package console

import (
	"net/url"
	"strings"
)

// Route is one entry of the console navigation table.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

// Routes lists the console navigation table. Everything under /admin sits
// behind the session guard.
func Routes() []Route {
	return []Route{
		{Path: "/admin", Name: "AdminDashboard", RequiresAuth: true},
		{Path: "/admin/products", Name: "AdminProducts", RequiresAuth: true},
		{Path: "/admin/users", Name: "AdminUsers", RequiresAuth: true},
		{Path: "/admin/categories", Name: "AdminCategories", RequiresAuth: true},
		{Path: "/admin/profile", Name: "AdminProfile", RequiresAuth: true},
		{Path: "/login", Name: "Login"},
		{Path: "/register", Name: "Register"},
	}
}

// DefaultLanding is where an authenticated visit to /login or /register ends up.
const DefaultLanding = "/admin"

// Navigation describes an attempted navigation.
type Navigation struct {
	Path     string // matched route path
	FullPath string // path including query, preserved as the redirect target
	Redirect string // value of an incoming ?redirect= parameter, if any
}

// GuardNavigation applies the navigation guard: guarded paths bounce an
// unauthenticated visitor to /login carrying the intended target, and a
// signed-in visitor never sees /login or /register again. The returned bool
// reports whether a redirect happened.
func GuardNavigation(authenticated bool, nav Navigation) (string, bool) {
	if !authenticated && routeRequiresAuth(nav.Path) {
		target := nav.FullPath
		if target == "" {
			target = nav.Path
		}
		q := url.Values{}
		q.Set("redirect", target)
		return "/login?" + q.Encode(), true
	}

	if authenticated && (nav.Path == "/login" || nav.Path == "/register") {
		if nav.Redirect != "" {
			return nav.Redirect, true
		}
		return DefaultLanding, true
	}

	return nav.Path, false
}

func routeRequiresAuth(path string) bool {
	for _, r := range Routes() {
		if r.Path == path {
			return r.RequiresAuth
		}
	}
	// Unlisted paths under the admin layout inherit its guard.
	return strings.HasPrefix(path, "/admin")
}
