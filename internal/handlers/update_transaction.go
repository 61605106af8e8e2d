package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

//go:generate mockgen -source=update_transaction.go -destination=update_transaction_mock.go -package=handlers

// TransactionUpdater defines the interface that the service must implement.
type TransactionUpdater interface {
	UpdateTransaction(ctx context.Context, profileName, transactionID string, upd models.TransactionUpdate) (*models.Transaction, error)
}

// UpdateTransactionRequest represents the JSON body for updating a transaction.
// Omitted fields keep their stored values.
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	// New label
	// default: Rent
	Label string `json:"label,omitempty"`

	// New signed amount in minor units
	// default: -90000
	Amount int64 `json:"amount,omitempty"`

	// Replacement tags
	Tags []string `json:"tags,omitempty"`
}

// NewUpdateTransactionHandler returns an HTTP handler that updates a transaction.
// @Summary Update transaction
// @Description Replaces the provided fields of a transaction owned by the profile.
// @Tags transactions
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Param id path string true "Transaction ID"
// @Param request body handlers.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} handlers.ErrorResponse "Invalid label, amount, tag or body"
// @Failure 404 {object} handlers.ErrorResponse "Unknown profile or transaction"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /{profile}/transactions/{id} [put]
func NewUpdateTransactionHandler(svc TransactionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		transactionID, err := urlParam(r, "id")
		if err != nil {
			writeBadRequest(w, "Invalid transaction id")
			return
		}

		var req UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode update transaction request", "request_id", middlewares.GetRequestID(r.Context()), "error", err)
			writeBadRequest(w, "Invalid request body")
			return
		}

		t, err := svc.UpdateTransaction(r.Context(), profile, transactionID, models.TransactionUpdate{
			Label:  req.Label,
			Amount: req.Amount,
			Tags:   req.Tags,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, t)
	}
}
