package frontend

import (
	"strconv"
	"strings"

	"github.com/sbilibin2017/finance-planner/internal/models"
)

// OverviewView is the rendered profile-overview page.
type OverviewView struct {
	Profile string
	In      []string
	Out     []string
	Stats   []string
}

// BuildOverview splits transactions by sign and formats them with the stats.
// Positive amounts are incoming; zero and negative amounts are outgoing.
func BuildOverview(profile string, transactions []models.Transaction, stats models.TransactionStats) *OverviewView {
	v := &OverviewView{
		Profile: profile,
		In:      []string{},
		Out:     []string{},
		Stats:   FormatStats(stats),
	}
	for _, t := range transactions {
		if t.Amount > 0 {
			v.In = append(v.In, FormatTransaction(t))
		} else {
			v.Out = append(v.Out, FormatTransaction(t))
		}
	}
	return v
}

// FormatTransaction renders "label: |amount|" followed by " [tag, tag]" when tags exist.
func FormatTransaction(t models.Transaction) string {
	amount := t.Amount
	if amount < 0 {
		amount = -amount
	}

	var sb strings.Builder
	sb.WriteString(t.Label)
	sb.WriteString(": ")
	sb.WriteString(strconv.FormatInt(amount, 10))
	if len(t.Tags) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(t.Tags, ", "))
		sb.WriteString("]")
	}
	return sb.String()
}

// FormatStats renders one "Label: value" line per stat.
func FormatStats(stats models.TransactionStats) []string {
	return []string{
		"Sum: " + strconv.FormatInt(stats.Sum, 10),
		"In: " + strconv.FormatInt(stats.In, 10),
		"Out: " + strconv.FormatInt(stats.Out, 10),
		"Count: " + strconv.FormatInt(stats.Count, 10),
	}
}
