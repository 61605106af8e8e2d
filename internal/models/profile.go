package models

// ProfileDB represents a profile row in the database
type ProfileDB struct {
	ProfileID string `json:"id" db:"id"`     // Primary key, prefixed with "pro:"
	Name      string `json:"name" db:"name"` // Unique profile name
}
