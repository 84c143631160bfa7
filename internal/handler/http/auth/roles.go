package auth

import "strings"

// Role constants define the available user roles in the system.
// These roles are used in JWT claims and permission checks.
const (
	// RoleAdmin has full access to all endpoints and methods.
	RoleAdmin = "admin"
	// RoleEditor can create and edit announcements and work with revision
	// history, but cannot delete content, manage categories, or trigger
	// admin operations.
	RoleEditor = "editor"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use
	// on AllowedPaths.
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// Supports wildcards: "/*" matches all paths, "/announcements/*"
	// matches all announcement endpoints including subresources.
	AllowedPaths []string

	// ReadOnlyPaths specifies paths where the role may only use GET and
	// OPTIONS regardless of AllowedMethods. Same pattern syntax as
	// AllowedPaths.
	ReadOnlyPaths []string
}

// RolePermissions maps each role to its allowed permissions.
//
// Admin has full access. Editor can work with announcements and revisions
// except deletion, and can read but not manage categories. The sweep
// trigger under /admin stays admin-only by omission from the editor lists.
//
// OPTIONS is included for both roles to support CORS preflight requests.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleEditor: {
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedPaths: []string{
			"/announcements",
			"/announcements/*",
			"/revisions",
			"/revisions/*",
		},
		ReadOnlyPaths: []string{
			"/categories",
			"/categories/*",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or lacks permission.
//
// Example:
//
//	checkRolePermission("admin", "DELETE", "/announcements/1")   // true
//	checkRolePermission("editor", "PUT", "/announcements/1")     // true
//	checkRolePermission("editor", "DELETE", "/announcements/1")  // false (method not allowed)
//	checkRolePermission("editor", "GET", "/categories")          // true (read-only path)
//	checkRolePermission("editor", "POST", "/categories")         // false (read-only path)
//	checkRolePermission("editor", "POST", "/admin/sweep")        // false (path not allowed)
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	if matchesPathPattern(path, perm.ReadOnlyPaths) {
		return method == "GET" || method == "OPTIONS"
	}

	methodAllowed := false
	for _, allowedMethod := range perm.AllowedMethods {
		if allowedMethod == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
//
// Pattern rules:
//   - "/*" matches all paths
//   - "/announcements/*" matches "/announcements", "/announcements/1",
//     "/announcements/1/revisions", etc.
//   - "/categories" matches only "/categories" (exact match)
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
