package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/middlewares"
	"github.com/sbilibin2017/finance-planner/internal/models"
)

//go:generate mockgen -source=add_transaction.go -destination=add_transaction_mock.go -package=handlers

// TransactionAdder defines the interface that the service must implement.
type TransactionAdder interface {
	AddTransaction(ctx context.Context, profileName, label string, amount int64, tags []string) (*models.Transaction, error)
}

// AddTransactionRequest represents the JSON body for adding a transaction
// swagger:model AddTransactionRequest
type AddTransactionRequest struct {
	// Transaction label
	// required: true
	// default: Groceries
	Label string `json:"label"`

	// Signed amount in minor units, negative for outgoing money
	// required: true
	// default: -2500
	Amount int64 `json:"amount"`

	// Optional tags
	Tags []string `json:"tags"`
}

// NewAddTransactionHandler returns an HTTP handler that adds a transaction to a profile.
// @Summary Add transaction
// @Description Validates and stores a transaction. Unknown profiles are created on first use.
// @Tags transactions
// @Accept json
// @Produce json
// @Param profile path string true "Profile name"
// @Param request body handlers.AddTransactionRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} handlers.ErrorResponse "Invalid label, amount, tag or body"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /{profile}/transactions [post]
func NewAddTransactionHandler(svc TransactionAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req AddTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode add transaction request", "request_id", middlewares.GetRequestID(r.Context()), "error", err)
			writeBadRequest(w, "Invalid request body")
			return
		}

		t, err := svc.AddTransaction(r.Context(), profile, req.Label, req.Amount, req.Tags)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, t)
	}
}
