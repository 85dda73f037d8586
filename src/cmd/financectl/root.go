package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"finance-service/src/internal/config"
	"finance-service/src/pkg/databases/docstore"
	"finance-service/src/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	viperConfig *viper.Viper
	logger      log.Log
	store       docstore.Store
	useCases    *config.UseCases
)

var rootCmd = &cobra.Command{
	Use:   "financectl",
	Short: "Operate the finance ledger from the command line",
	Long: `financectl reads the same configuration as the finance service
(config.yaml, .env and FINANCE_* variables) and runs reports,
exports and reconciliation directly against the ledger store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viperConfig = config.NewViper()
		log.InitLogger(viperConfig)
		logger = log.GetLogger()

		var err error
		store, err = config.NewDatabase(cmd.Context(), viperConfig, logger)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		useCases = config.NewUseCases(&config.BootstrapConfig{
			DB:       store,
			Log:      logger,
			Validate: config.NewValidator(viperConfig),
			Config:   viperConfig,
		})
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close(context.Background())
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
