package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/finance-planner/internal/models"
)

//go:generate mockgen -source=stats.go -destination=stats_mock.go -package=handlers

// StatsGetter defines the interface that the service must implement.
type StatsGetter interface {
	GetStats(ctx context.Context, profileName string) (*models.TransactionStats, error)
}

// NewGetStatsHandler returns an HTTP handler for the transaction stats of a profile.
// @Summary Get transaction stats
// @Description Returns the balance, incoming and outgoing totals and the number of transactions
// @Tags transactions
// @Produce json
// @Param profile path string true "Profile name"
// @Success 200 {object} models.TransactionStats
// @Failure 400 {object} handlers.ErrorResponse "Invalid profile name"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /{profile}/transactions/stats [get]
func NewGetStatsHandler(svc StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := profileParam(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		stats, err := svc.GetStats(r.Context(), profile)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
