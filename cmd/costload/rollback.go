package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/db"
	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/fees"
	"github.com/becastil/costdash/internal/ingest"
	"github.com/becastil/costdash/internal/logging"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Undo a bulk apply using its audit entry",
	RunE:  runRollback,
}

func init() {
	f := rollbackCmd.Flags()
	b := &cfg.Bulk
	f.StringVar(&b.FeesPath, "fees", "", "Fees config to roll back (required)")
	f.StringVar(&b.AuditPath, "audit", "", "Audit entry file written by bulk-apply")
	f.StringVar(&b.AuditID, "audit-id", "", "Audit id to load from Postgres instead of --audit")
	f.StringVar(&b.OutPath, "out", "", "Where to write the restored config (default: overwrite --fees)")
	_ = rollbackCmd.MarkFlagRequired("fees")
	rollbackCmd.MarkFlagsMutuallyExclusive("audit", "audit-id")
	rollbackCmd.MarkFlagsOneRequired("audit", "audit-id")
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	b := cfg.Bulk

	current, err := fees.LoadConfig(b.FeesPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load fees config")
		os.Exit(exitcode.UsageError)
	}

	var entry fees.AuditEntry
	if b.AuditID != "" {
		entry, err = loadAuditFromDB(b.AuditID)
	} else {
		entry, err = fees.LoadAudit(b.AuditPath)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load audit entry")
		os.Exit(exitcode.UsageError)
	}

	restored := fees.Rollback(current, entry)
	outPath := b.OutPath
	if outPath == "" {
		outPath = b.FeesPath
	}
	if err := fees.SaveConfig(outPath, restored); err != nil {
		log.Error().Err(err).Msg("failed to write fees config")
		os.Exit(exitcode.TransformError)
	}

	log.Info().Str("audit_id", entry.ID).Strs("months", entry.MonthsUpdated).Msg("bulk apply rolled back")
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d months from audit %s into %s\n", len(entry.MonthsUpdated), entry.ID, outPath)
	return nil
}

func loadAuditFromDB(id string) (fees.AuditEntry, error) {
	if cfg.DSN == "" {
		return fees.AuditEntry{}, fmt.Errorf("--audit-id needs --dsn")
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		return fees.AuditEntry{}, err
	}
	defer pool.Close()
	return ingest.GetAudit(ctx, pool, id)
}
