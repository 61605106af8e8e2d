package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/spf13/cobra"
)

// NewListTransactionsCommand prints the incoming and outgoing transactions of an existing profile.
func NewListTransactionsCommand(open ServicesOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-transactions",
		Short: "List all transactions for the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileName, _ := cmd.Flags().GetString("profile")

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			profile, err := svc.GetByName(cmd.Context(), profileName)
			if err != nil {
				return err
			}

			transactions, err := svc.ListTransactions(cmd.Context(), profile.Name)
			if err != nil {
				return err
			}

			writeTransactionReport(cmd.OutOrStdout(), profile.Name, transactions)
			return nil
		},
	}

	cmd.Flags().String("profile", "", "Profile to interact with")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

// NewAddTransactionCommand adds a transaction, creating the profile when needed.
func NewAddTransactionCommand(open ServicesOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-transaction",
		Short: "Add a transaction to the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileName, _ := cmd.Flags().GetString("profile")
			label, _ := cmd.Flags().GetString("label")
			amount, _ := cmd.Flags().GetInt64("amount")
			tags, _ := cmd.Flags().GetStringArray("tags")

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			t, err := svc.AddTransaction(cmd.Context(), profileName, label, amount, tags)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s\n", t.TransactionID)
			return nil
		},
	}

	cmd.Flags().String("profile", "", "Profile to interact with")
	cmd.Flags().String("label", "", "Transaction label")
	cmd.Flags().Int64("amount", 0, "Transaction amount in pence, negative for outgoing")
	cmd.Flags().StringArray("tags", []string{}, "Tags to group the transaction")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("label")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// NewUpdateTransactionCommand changes the given fields of a transaction.
func NewUpdateTransactionCommand(open ServicesOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-transaction",
		Short: "Update a transaction in the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profileName, _ := cmd.Flags().GetString("profile")
			id, _ := cmd.Flags().GetString("id")
			label, _ := cmd.Flags().GetString("label")
			amount, _ := cmd.Flags().GetInt64("amount")
			tags, _ := cmd.Flags().GetStringArray("tags")

			svc, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			t, err := svc.UpdateTransaction(cmd.Context(), profileName, id, models.TransactionUpdate{
				Label:  label,
				Amount: amount,
				Tags:   tags,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %s\n", t.TransactionID)
			return nil
		},
	}

	cmd.Flags().String("profile", "", "Profile to interact with")
	cmd.Flags().String("id", "", "Transaction ID")
	cmd.Flags().String("label", "", "Transaction label")
	cmd.Flags().Int64("amount", 0, "Transaction amount in pence, negative for outgoing")
	cmd.Flags().StringArray("tags", nil, "Tags to group the transaction")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func writeTransactionReport(w io.Writer, profileName string, transactions []models.Transaction) {
	var in, out []models.Transaction
	for _, t := range transactions {
		if t.Amount > 0 {
			in = append(in, t)
		} else {
			out = append(out, t)
		}
	}

	fmt.Fprintf(w, "Profile: %s\n", profileName)
	writeTransactionTable(w, "Incoming Transactions", in)
	writeTransactionTable(w, "Outgoing Transactions", out)

	stats := models.NewTransactionStats(transactions)
	fmt.Fprintf(w, "End balance: %s\n", formatPounds(stats.Sum))
}

func writeTransactionTable(w io.Writer, title string, transactions []models.Transaction) {
	fmt.Fprintf(w, "%s:\n", title)

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "Label", "Amount", "Tags"})

	var total int64
	for _, t := range transactions {
		total += t.Amount
		table.Append([]string{t.TransactionID, t.Label, formatPounds(abs(t.Amount)), strings.Join(t.Tags, ", ")})
	}
	table.SetFooter([]string{"", "", formatPounds(abs(total)), ""})
	table.Render()
}

// formatPounds renders an amount in pence as pounds, e.g. -1050 as "-£10.50".
func formatPounds(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s£%d.%02d", sign, pence/100, pence%100)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
