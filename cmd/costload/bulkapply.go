package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/config"
	"github.com/becastil/costdash/internal/datasetread"
	"github.com/becastil/costdash/internal/db"
	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/fees"
	"github.com/becastil/costdash/internal/ingest"
	"github.com/becastil/costdash/internal/logging"
)

var bulkApplyCmd = &cobra.Command{
	Use:   "bulk-apply",
	Short: "Preview or apply fee/budget overrides across a month range",
	Long: "Validates a bulk apply request and prints a per-month preview. With --execute the " +
		"updated fees config and an audit entry are written; the audit is also stored in Postgres when --dsn is set.",
	RunE: runBulkApply,
}

func init() {
	f := bulkApplyCmd.Flags()
	b := &cfg.Bulk
	f.StringVar(&b.FeesPath, "fees", "", "Fees config file, .json or .yaml (required)")
	f.StringVar(&b.SourcePath, "source", "", "Month override to apply (default: the base values of --fees)")
	f.StringVar(&b.EnrollmentPath, "enrollment", "", "Budget CSV/XLSX to read monthly enrollment from")
	f.StringVar(&cfg.Sheet, "sheet", "", "XLSX sheet name for --enrollment")
	f.StringVar(&b.StartMonth, "start", "", "First month, YYYY-MM (required)")
	f.IntVar(&b.Duration, "duration", 0, "Number of months to apply")
	f.StringVar(&b.EndMonth, "end", "", "Last month, YYYY-MM")
	f.StringVar(&b.Policy, "policy", string(fees.PolicyOverwrite), "Conflict policy: OVERWRITE, FILL_BLANKS_ONLY or ADDITIVE")
	f.StringSliceVar(&b.Components, "components", []string{"fees"}, "Components to apply: fees, budget, stopLossReimb, rebates")
	f.StringVar(&b.Missing, "missing", string(fees.MissingCreate), "Months without enrollment: CREATE, SKIP or BLOCK")
	f.BoolVar(&b.Execute, "execute", false, "Apply the change (default is preview only)")
	f.StringVar(&b.OutPath, "out", "", "Where to write the updated fees config (default: overwrite --fees)")
	f.StringVar(&b.AuditPath, "audit", "", "Where to write the audit entry (default: bulk-apply-<id>.json next to --out)")
	f.IntVar(&cfg.MaxRangeMonths, "max-range", 0, "Longest allowed range in months (default 120)")
	_ = bulkApplyCmd.MarkFlagRequired("fees")
	_ = bulkApplyCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(bulkApplyCmd)
}

// buildRequest turns the bulk-apply flags into a request. durationSet reports
// whether --duration was given at all, so that 0 reaches validation.
func buildRequest(b config.BulkConfig, durationSet bool, source fees.MonthOverride) (fees.BulkApplyConfig, error) {
	req := fees.BulkApplyConfig{
		StartMonth:           b.StartMonth,
		EndMonth:             b.EndMonth,
		ConflictPolicy:       fees.ConflictPolicy(strings.ToUpper(b.Policy)),
		MissingMonthStrategy: fees.MissingMonthStrategy(strings.ToUpper(b.Missing)),
		Source:               source,
	}
	if durationSet {
		d := b.Duration
		req.Duration = &d
	}
	for _, name := range b.Components {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, ok := fees.ParseComponent(name)
		if !ok {
			return fees.BulkApplyConfig{}, fmt.Errorf("unknown component %q", name)
		}
		req.Components.Enable(c)
	}
	return req, nil
}

func loadEnrollment(path, sheet string) ([]fees.MonthlyEnrollment, error) {
	if path == "" {
		return nil, nil
	}
	ds, err := datasetread.Open(path, sheet)
	if err != nil {
		return nil, fmt.Errorf("read enrollment: %w", err)
	}
	return fees.ExtractEnrollment(ds), nil
}

func newApplier() *fees.Applier {
	a := fees.NewApplier()
	if cfg.MaxRangeMonths > 0 {
		a.MaxRangeMonths = cfg.MaxRangeMonths
	}
	return a
}

func runBulkApply(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	b := cfg.Bulk
	w := cmd.OutOrStdout()

	current, err := fees.LoadConfig(b.FeesPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load fees config")
		os.Exit(exitcode.UsageError)
	}
	source := current.Base()
	if b.SourcePath != "" {
		if source, err = fees.LoadOverride(b.SourcePath); err != nil {
			log.Error().Err(err).Msg("failed to load source override")
			os.Exit(exitcode.UsageError)
		}
	}
	req, err := buildRequest(b, cmd.Flags().Changed("duration"), source)
	if err != nil {
		log.Error().Err(err).Msg("invalid bulk apply flags")
		os.Exit(exitcode.UsageError)
	}
	enrollment, err := loadEnrollment(b.EnrollmentPath, cfg.Sheet)
	if err != nil {
		log.Error().Err(err).Msg("failed to load enrollment")
		os.Exit(exitcode.ValidationError)
	}

	applier := newApplier()
	v := applier.Validate(req, enrollment)
	printValidation(w, v)
	if !v.IsValid {
		os.Exit(exitcode.ValidationError)
	}
	printPreview(w, applier.Preview(current, req, enrollment))

	if !b.Execute {
		fmt.Fprintln(w, "\nPreview only; pass --execute to apply.")
		return nil
	}

	res := applier.Execute(current, req, enrollment)
	outPath := b.OutPath
	if outPath == "" {
		outPath = b.FeesPath
	}
	auditPath := b.AuditPath
	if auditPath == "" {
		auditPath = filepath.Join(filepath.Dir(outPath), "bulk-apply-"+res.AuditLog.ID+".json")
	}

	if len(res.MonthsUpdated) > 0 {
		if err := fees.SaveConfig(outPath, res.UpdatedConfig); err != nil {
			log.Error().Err(err).Msg("failed to write fees config")
			os.Exit(exitcode.TransformError)
		}
		if err := fees.SaveAudit(auditPath, res.AuditLog); err != nil {
			log.Error().Err(err).Msg("failed to write audit entry")
			os.Exit(exitcode.TransformError)
		}
		if cfg.DSN != "" {
			if err := storeAudit(log, res.AuditLog); err != nil {
				log.Error().Err(err).Msg("failed to store audit entry")
				os.Exit(exitcode.DBConnError)
			}
		}
	}

	fmt.Fprintf(w, "\nUpdated %d months %v, skipped %d %v\n",
		len(res.MonthsUpdated), res.MonthsUpdated, len(res.MonthsSkipped), res.MonthsSkipped)
	if len(res.MonthsUpdated) > 0 {
		fmt.Fprintf(w, "Config: %s\nAudit:  %s (id %s)\n", outPath, auditPath, res.AuditLog.ID)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  error: %s\n", e)
	}

	switch {
	case !res.Success:
		os.Exit(exitcode.ValidationError)
	case len(res.MonthsSkipped) > 0:
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

func storeAudit(log zerolog.Logger, entry fees.AuditEntry) error {
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()
	return ingest.RecordAudit(ctx, pool, log, entry)
}

func printValidation(w io.Writer, v fees.Validation) {
	for _, e := range v.Errors {
		fmt.Fprintf(w, "error:   %s\n", e)
	}
	for _, warn := range v.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func printPreview(w io.Writer, snaps []fees.MonthlySnapshot) {
	fmt.Fprintf(w, "\n%-8s  %14s  %14s  %s\n", "MONTH", "CURRENT FIXED", "NEW FIXED", "CHANGE")
	for _, s := range snaps {
		change := "-"
		if s.HasChanges {
			change = "yes"
		}
		if s.Enrollment == nil {
			change += " (no enrollment)"
		}
		fmt.Fprintf(w, "%-8s  %14.2f  %14.2f  %s\n", s.Month, s.CurrentTotalFixed, s.NewTotalFixed, change)
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "          warning: %s\n", warn)
		}
	}
}
