package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stemsi/mathsession-backend/internal/app"
	"github.com/stemsi/mathsession-backend/internal/config"
	"github.com/stemsi/mathsession-backend/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mathctl",
		Short:         "Operate math problem sessions from the terminal",
		Long:          "mathctl generates problem sessions and grades answers against the configured store and LLM provider.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("store", "", "Store driver: postgres or sqlite (overrides STORE_DRIVER)")
	root.PersistentFlags().String("sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	root.PersistentFlags().Bool("json", false, "Print results as JSON")
	root.PersistentFlags().Bool("verbose", false, "Log at debug level to stderr")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSubmitCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

// loadApp builds the service from env config plus flag overrides.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.StoreDriver = v
	}
	if v, _ := cmd.Flags().GetString("sqlite-path"); v != "" {
		cfg.SQLitePath = v
	}

	log := zerolog.Nop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log = logger.New(cmd.ErrOrStderr(), "debug", "pretty")
	}

	a, err := app.Build(cmd.Context(), cfg, log, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return a, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
