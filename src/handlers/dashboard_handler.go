package handlers

import (
	"net/http"

	"bankweb/src/middleware"
	"bankweb/src/store"
	"bankweb/src/views"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func Dashboard(st store.Store, renderer *views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		accounts, err := st.ListAccounts(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render(w, renderer, views.PageDashboard, views.DashboardPage{
			Page: views.Page{
				Title:    "Dashboard",
				Username: middleware.UsernameFromContext(r.Context()),
				Scripts:  []string{"dashboard.js"},
			},
			Accounts:  accounts,
			Shortcuts: views.Shortcuts,
		}, logger)
	}
}

// DashboardShortcut is the no-script fallback for the dashboard buttons.
func DashboardShortcut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, views.ShortcutURL(chi.URLParam(r, "filter")), http.StatusSeeOther)
	}
}

func APIAccounts(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		accounts, err := st.ListAccounts(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, accounts, logger)
	}
}
