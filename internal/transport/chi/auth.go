package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/workermatch/internal/transport/api"
)

// publicPaths bypass authentication.
var publicPaths = map[string]struct{}{
	"/health":                 {},
	"/metrics":                {},
	"/workers/recommend":      {},
	"/recommendations/health": {},
}

// isPublic reports whether path is served without an admin key.
// Click and hire feedback come from end users.
func isPublic(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	if strings.HasPrefix(path, "/recommendations/") {
		return strings.HasSuffix(path, "/click") || strings.HasSuffix(path, "/hire")
	}
	return false
}

// AdminAuthMiddleware returns a middleware that validates Bearer tokens on admin routes.
// If apiKeys is empty, authentication is disabled (pass-through).
func AdminAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, api.ErrorResponseCodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					api.ErrorResponseCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			if _, ok := validKeys[token]; !ok {
				writeError(w, http.StatusUnauthorized, api.ErrorResponseCodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
