package commands

import (
	"context"

	"github.com/sbilibin2017/finance-planner/internal/config"
	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"github.com/spf13/cobra"
)

// TransactionServices is what the transaction CLI commands need from the service layer.
type TransactionServices interface {
	GetByName(ctx context.Context, name string) (*models.ProfileDB, error)
	ListTransactions(ctx context.Context, profileName string) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, profileName, label string, amount int64, tags []string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, profileName, transactionID string, upd models.TransactionUpdate) (*models.Transaction, error)
}

// ServicesOpener connects the service layer for a single CLI invocation.
// The returned func releases everything that was opened.
type ServicesOpener func(ctx context.Context) (TransactionServices, func(), error)

// ConfigLoader returns the validated configuration.
type ConfigLoader func() (*config.Config, error)

// NewRootCommand builds the finance command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	loadConfig := func() (*config.Config, error) {
		cfg := config.Load(configPath)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	openServices := func(ctx context.Context) (TransactionServices, func(), error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		if err := logger.Initialize(cfg.LogLevel, logger.EncodingConsole); err != nil {
			return nil, nil, err
		}

		b, err := newBackend(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return b.cliServices(), b.close, nil
	}

	cmd := &cobra.Command{
		Use:          "finance",
		Short:        "Finance is a quick and easy financial planner.",
		Long:         `A quick and easy financial planner for the month.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.env", "Path to configuration file")

	cmd.AddCommand(
		NewListTransactionsCommand(openServices),
		NewAddTransactionCommand(openServices),
		NewUpdateTransactionCommand(openServices),
		NewAPICommand(loadConfig),
		NewFrontendCommand(loadConfig),
	)

	return cmd
}
