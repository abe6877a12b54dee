package handlers

import (
	"fmt"
	"net/http"
	"time"

	"bankweb/src/events"
	"bankweb/src/middleware"
	"bankweb/src/models"
	"bankweb/src/store"
	"bankweb/src/util"
	"bankweb/src/views"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TransferPage(st store.Store, renderer *views.Renderer, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		accounts, err := st.ListAccounts(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		form := views.NewTransferForm(accounts)
		form.Select(models.TransferKind(r.URL.Query().Get("type")))

		render(w, renderer, views.PageTransfer, views.TransferPage{
			Page: views.Page{
				Title:    "Transfer Funds",
				Username: middleware.UsernameFromContext(r.Context()),
				Scripts:  []string{"transfer.js"},
			},
			Form:        form,
			Frequencies: models.Frequencies,
		}, logger)
	}
}

func findAccount(accounts []models.Account, id string) (models.Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Account{}, false
}

// Transfer validates a submission and records it as an audit event.
// Balances are never touched.
func Transfer(st store.Store, publisher events.Publisher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			logger.Warn("Failed to parse transfer form", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req, err := util.ValidateTransfer(util.TransferInput{
			Kind:        r.PostFormValue("transferType"),
			FromAccount: r.PostFormValue("fromAccount"),
			ToAccount:   r.PostFormValue("toAccount"),
			Amount:      r.PostFormValue("amount"),
			Notes:       r.PostFormValue("notes"),
			Frequency:   r.PostFormValue("frequency"),
		})
		if err != nil {
			logger.Info("Rejected transfer", zap.Int64("user_id", userID), zap.String("reason", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		accounts, err := st.ListAccounts(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to list accounts", zap.Int64("user_id", userID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if _, ok := findAccount(accounts, req.FromAccount); !ok {
			logger.Warn("Transfer from an account the user does not own",
				zap.Int64("user_id", userID),
				zap.String("from_account", req.FromAccount))
			http.Error(w, util.MsgFromAccount, http.StatusBadRequest)
			return
		}

		recipient := req.ToAccount
		if req.Kind == models.TransferInternal {
			to, ok := findAccount(accounts, req.ToAccount)
			if !ok {
				logger.Warn("Internal transfer to an account the user does not own",
					zap.Int64("user_id", userID),
					zap.String("to_account", req.ToAccount))
				http.Error(w, util.MsgRecipientAccount, http.StatusBadRequest)
				return
			}
			if to.ID == req.FromAccount {
				logger.Info("Rejected transfer to the same account", zap.Int64("user_id", userID))
				http.Error(w, util.MsgSameAccount, http.StatusBadRequest)
				return
			}
			recipient = to.Name
		}

		req.ID = uuid.NewString()
		req.UserID = userID
		req.RequestedAt = time.Now().UTC()

		if err := publisher.PublishTransfer(r.Context(), *req); err != nil {
			logger.Error("Failed to publish transfer event",
				zap.String("transfer_id", req.ID),
				zap.Error(err))
		}

		logger.Info("Transfer scheduled",
			zap.String("transfer_id", req.ID),
			zap.Int64("user_id", userID),
			zap.String("kind", string(req.Kind)))
		writeText(w, http.StatusOK, fmt.Sprintf("Transfer of %s scheduled (%s) to account %s.",
			views.FormatAmount(req.Amount), req.Frequency, recipient))
	}
}
