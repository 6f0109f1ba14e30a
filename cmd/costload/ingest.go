package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/db"
	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/ingest"
	"github.com/becastil/costdash/internal/logging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Normalize a budget + claims pair and load it into the database",
	RunE:  runIngest,
}

func init() {
	addInputFlags(ingestCmd)
	f := ingestCmd.Flags()
	f.BoolVar(&cfg.Force, "force", false, "Re-import even if this file pair is already loaded")
	f.BoolVar(&cfg.AllowErrors, "allow-errors", false, "Stage rows even when error-severity issues exist")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("ingest failed")
			switch pe.Phase {
			case ingest.PhasePreflight:
				os.Exit(exitcode.DBConnError)
			case ingest.PhaseRead, ingest.PhaseValidate:
				os.Exit(exitcode.ValidationError)
			case ingest.PhaseStage:
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("ingest failed")
		os.Exit(exitcode.TransformError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("Upload %s already loaded; nothing to do (use --force to re-import)\n", summary.UploadID)
		return nil
	}
	fmt.Printf("Ingest complete: upload %s, %d budget rows, %d claims rows, %d issues (%d errors, %d warnings) (%.1fs)\n",
		summary.UploadID, summary.BudgetRowsStaged, summary.ClaimsRowsStaged, summary.IssuesStaged,
		summary.Errors, summary.Warnings, summary.DurationTotal.Seconds())
	return nil
}
