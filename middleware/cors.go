package middleware

import (
	"net/http"
	"strings"

	"cityagent/config"
)

// EnableCORS adds CORS headers to responses. Allowed origins come from
// ALLOWED_ORIGINS (comma-separated); with none configured, any origin is
// allowed for development.
func EnableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		// Call the next handler
		next(w, r)
	}
}

func originAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range strings.Split(config.GetAllowedOrigins(), ",") {
		if allowed != "" && strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}
