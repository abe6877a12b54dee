package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

const demoModeMessage = "Demo mode: only GET requests are allowed"

func DemoModeMiddleware(isDemo bool, logger *zap.Logger) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/login":    true,
		"/register": true,
	}

	return func(next http.Handler) http.Handler {
		if !isDemo {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			logger.Info("Blocked write in demo mode",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			http.Error(w, demoModeMessage, http.StatusForbidden)
		})
	}
}
