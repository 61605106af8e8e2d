package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionStats(t *testing.T) {
	tests := []struct {
		name         string
		transactions []Transaction
		expected     TransactionStats
	}{
		{
			name:     "empty",
			expected: TransactionStats{},
		},
		{
			name: "mixed amounts",
			transactions: []Transaction{
				{Amount: 100},
				{Amount: 1},
				{Amount: -5},
				{Amount: 201},
				{Amount: -200},
			},
			expected: TransactionStats{Sum: 97, In: 302, Out: -205, Count: 5},
		},
		{
			name:         "only outgoing",
			transactions: []Transaction{{Amount: -10}, {Amount: -15}},
			expected:     TransactionStats{Sum: -25, In: 0, Out: -25, Count: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewTransactionStats(tt.transactions))
		})
	}
}
