package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/ingest"
	"github.com/becastil/costdash/internal/logging"
	"github.com/becastil/costdash/internal/parquetio"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write normalized budget and claims rows to Parquet",
	RunE:  runExport,
}

func init() {
	addInputFlags(exportCmd)
	f := exportCmd.Flags()
	f.StringVar(&cfg.OutDir, "out", ".", "Directory for budget.parquet and claims.parquet")
	f.BoolVar(&cfg.AllowErrors, "allow-errors", false, "Export even when error-severity issues exist")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	n, err := ingest.Load(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		os.Exit(exitcode.ValidationError)
	}
	errs, warnings := n.Counts()
	if errs > 0 && !cfg.AllowErrors {
		log.Error().Int("errors", errs).Msg("error issues present (run plan for details, or pass --allow-errors)")
		os.Exit(exitcode.ValidationError)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Error().Err(err).Msg("failed to create output dir")
		os.Exit(exitcode.UsageError)
	}
	budgetPath := filepath.Join(cfg.OutDir, "budget.parquet")
	claimsPath := filepath.Join(cfg.OutDir, "claims.parquet")
	if err := parquetio.WriteBudget(budgetPath, n.Budget.Rows); err != nil {
		log.Error().Err(err).Msg("failed to write budget parquet")
		os.Exit(exitcode.TransformError)
	}
	if err := parquetio.WriteClaims(claimsPath, n.Claims.Rows); err != nil {
		log.Error().Err(err).Msg("failed to write claims parquet")
		os.Exit(exitcode.TransformError)
	}

	log.Info().
		Int("budget_rows", len(n.Budget.Rows)).
		Int("claims_rows", len(n.Claims.Rows)).
		Int("warnings", warnings).
		Msg("export complete")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows) and %s (%d rows)\n",
		budgetPath, len(n.Budget.Rows), claimsPath, len(n.Claims.Rows))
	return nil
}
