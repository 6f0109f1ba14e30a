package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "costload",
	Short: "Healthcare cost report normalizer and fee override tool",
	Long: "Normalizes budget and claims exports (CSV or XLSX) into canonical rows, " +
		"loads them into Postgres via the COPY protocol, and bulk-applies fee and budget overrides across month ranges.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return nil
		}
		return cfg.LoadFromFile(configPath)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv(config.DSNEnv), "Postgres connection string (or set "+config.DSNEnv+")")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "YAML file with header aliases and limits")
}

// addInputFlags binds the budget/claims file flags shared by plan, ingest and export.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.BudgetPath, "budget", "", "Path to budget CSV/XLSX (required)")
	f.StringVar(&cfg.ClaimsPath, "claims", "", "Path to claims CSV/XLSX (required)")
	f.StringVar(&cfg.Sheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	_ = cmd.MarkFlagRequired("budget")
	_ = cmd.MarkFlagRequired("claims")
}
