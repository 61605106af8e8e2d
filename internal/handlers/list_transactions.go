package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/finance-planner/internal/models"
)

//go:generate mockgen -source=list_transactions.go -destination=list_transactions_mock.go -package=handlers

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	ListTransactions(ctx context.Context, profileName string) ([]models.Transaction, error)
}

// ListTransactionsResponse represents the transactions of a profile
// swagger:model ListTransactionsResponse
type ListTransactionsResponse struct {
	// Transactions in creation order
	Data []models.Transaction `json:"data"`
}

// NewListTransactionsHandler returns an HTTP handler listing the transactions of a profile.
// @Summary List transactions
// @Description Returns every transaction of the profile. Unknown profiles are created on first use.
// @Tags transactions
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} handlers.ListTransactionsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid profile name"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /{profile}/transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		transactions, err := svc.ListTransactions(r.Context(), profile)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, ListTransactionsResponse{Data: transactions})
	}
}
