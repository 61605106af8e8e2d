package models

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	TransactionID string `json:"id" db:"id"`                 // Primary key, prefixed with "tra:"
	ProfileID     string `json:"profile_id" db:"profile_id"` // Owning profile
	Label         string `json:"label" db:"label"`           // Human readable label
	Amount        int64  `json:"amount" db:"amount"`         // Signed amount in minor units, positive is incoming
	CreatedAt     int64  `json:"created_at" db:"created_at"` // Unix nanoseconds, used for ordering
}

// Transaction is a transaction together with its tags.
type Transaction struct {
	TransactionID string   `json:"id"`
	ProfileID     string   `json:"-"`
	Label         string   `json:"label"`
	Amount        int64    `json:"amount"`
	Tags          []string `json:"tags"`
}

// TransactionUpdate holds the fields to change on an existing transaction.
// Zero values leave the stored field untouched.
type TransactionUpdate struct {
	Label  string
	Amount int64
	Tags   []string
}

// TransactionTagDB represents a transaction_tags row
type TransactionTagDB struct {
	TransactionID string `db:"transaction_id"`
	Tag           string `db:"tag"`
}

// Transaction event names
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
)

// TransactionEvent is published to the broker whenever a transaction changes.
type TransactionEvent struct {
	Event         string   `json:"event"`          // EventTransactionCreated or EventTransactionUpdated
	TransactionID string   `json:"transaction_id"` // Transaction identifier
	ProfileID     string   `json:"profile_id"`     // Owning profile
	Label         string   `json:"label"`          // Transaction label
	Amount        int64    `json:"amount"`         // Signed amount
	Tags          []string `json:"tags"`           // Transaction tags
	Timestamp     int64    `json:"timestamp"`      // Unix seconds
}
