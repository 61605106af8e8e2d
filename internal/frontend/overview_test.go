package frontend

import (
	"testing"

	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatTransaction(t *testing.T) {
	tests := []struct {
		name     string
		tr       models.Transaction
		expected string
	}{
		{
			name:     "incoming with tags",
			tr:       models.Transaction{Label: "Salary", Amount: 1000, Tags: []string{"work", "monthly"}},
			expected: "Salary: 1000 [work, monthly]",
		},
		{
			name:     "outgoing without tags",
			tr:       models.Transaction{Label: "Rent", Amount: -900, Tags: []string{}},
			expected: "Rent: 900",
		},
		{
			name:     "nil tags",
			tr:       models.Transaction{Label: "Gift", Amount: 5},
			expected: "Gift: 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTransaction(tt.tr))
		})
	}
}

func TestBuildOverview(t *testing.T) {
	transactions := []models.Transaction{
		{Label: "Salary", Amount: 1000, Tags: []string{"work"}},
		{Label: "Rent", Amount: -900},
		{Label: "Void", Amount: 0},
		{Label: "Refund", Amount: 25},
	}
	stats := models.NewTransactionStats(transactions)

	v := BuildOverview("alice", transactions, stats)

	assert.Equal(t, "alice", v.Profile)
	assert.Equal(t, []string{"Salary: 1000 [work]", "Refund: 25"}, v.In)
	assert.Equal(t, []string{"Rent: 900", "Void: 0"}, v.Out)
	assert.Equal(t, []string{"Sum: 125", "In: 1025", "Out: -900", "Count: 4"}, v.Stats)
}

func TestBuildOverview_Empty(t *testing.T) {
	v := BuildOverview("bob", nil, models.TransactionStats{})

	assert.Empty(t, v.In)
	assert.Empty(t, v.Out)
	assert.NotNil(t, v.In)
	assert.Equal(t, "Sum: 0", v.Stats[0])
}
