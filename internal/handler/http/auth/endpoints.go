package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// Justification for each public endpoint:
//   - /healthz, /ready, /live: orchestration health checks
//   - /metrics: Prometheus scraping
//   - /auth/token: token generation (can't require a token to get a token)
var PublicEndpoints = []string{
	"/healthz",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching
//   - Other endpoints require an exact match, a trailing slash, or query
//     params only, so /healthz does not match /healthz/detail or
//     /healthzcheck
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint {
			return true
		}
		if path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
