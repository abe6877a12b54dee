package handlers

import (
	"net/http"
	"strings"

	"bankweb/src/middleware"
	"bankweb/src/models"
	"bankweb/src/store"
	"bankweb/src/views"

	"go.uber.org/zap"
)

func filterFromQuery(r *http.Request) models.TransactionFilter {
	q := r.URL.Query()
	return models.TransactionFilter{
		Date: strings.TrimSpace(q.Get("date")),
		Type: models.TransactionType(strings.TrimSpace(q.Get("type"))),
	}
}

// HistoryPage loads the full history and filters it the same way the page
// script does after fetching /api/transactions.
func HistoryPage(st store.Store, renderer *views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		filter := filterFromQuery(r)

		txns, err := st.ListTransactions(r.Context(), userID, models.TransactionFilter{})
		if err != nil {
			logger.Error("Failed to list transactions", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		render(w, renderer, views.PageHistory, views.HistoryPage{
			Page: views.Page{
				Title:    "Transaction History",
				Username: middleware.UsernameFromContext(r.Context()),
				Scripts:  []string{"history.js"},
			},
			Filter:       filter,
			Types:        models.TransactionTypes,
			Rows:         views.HistoryRows(views.FilterTransactions(txns, filter)),
			EmptyMessage: views.NoTransactionsMessage,
			Columns:      views.HistoryColumns,
		}, logger)
	}
}

func APITransactions(st store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		txns, err := st.ListTransactions(r.Context(), userID, filterFromQuery(r))
		if err != nil {
			logger.Error("Failed to list transactions", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if txns == nil {
			txns = []models.Transaction{}
		}
		writeJSON(w, txns, logger)
	}
}
