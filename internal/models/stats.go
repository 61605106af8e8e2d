package models

// TransactionStats aggregates all transactions of a profile.
type TransactionStats struct {
	Sum   int64 `json:"sum" db:"sum"`     // Total of all amounts
	In    int64 `json:"in" db:"in_sum"`   // Total of positive amounts
	Out   int64 `json:"out" db:"out_sum"` // Total of negative amounts
	Count int64 `json:"count" db:"count"` // Number of transactions
}

// NewTransactionStats computes stats for the given transactions.
func NewTransactionStats(transactions []Transaction) TransactionStats {
	var stats TransactionStats
	for _, t := range transactions {
		stats.Sum += t.Amount
		if t.Amount > 0 {
			stats.In += t.Amount
		} else {
			stats.Out += t.Amount
		}
		stats.Count++
	}
	return stats
}
