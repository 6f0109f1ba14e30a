package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/ingest"
	"github.com/becastil/costdash/internal/logging"
	"github.com/becastil/costdash/internal/model"
	"github.com/becastil/costdash/internal/normalize"
)

// maxIssuesPerSeverity caps the issue listing of one severity in the plan report.
const maxIssuesPerSeverity = 50

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run normalization report (no writes)",
	RunE:  runPlan,
}

func init() {
	addInputFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	budgetSHA, err := normalize.FileHash(cfg.BudgetPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash budget file")
		os.Exit(exitcode.ValidationError)
	}
	claimsSHA, err := normalize.FileHash(cfg.ClaimsPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash claims file")
		os.Exit(exitcode.ValidationError)
	}

	n, err := ingest.Load(&cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to read input")
		os.Exit(exitcode.ValidationError)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== costload plan ===")
	fmt.Fprintf(w, "Budget:  %s\n         sha256 %s\n", cfg.BudgetPath, budgetSHA)
	fmt.Fprintf(w, "Claims:  %s\n         sha256 %s\n", cfg.ClaimsPath, claimsSHA)
	fmt.Fprintln(w)

	printTable(w, "Budget", n.BudgetRowsRead, len(n.Budget.Rows), n.Budget.FieldMappings, n.Budget.UnmappedHeaders)
	printTable(w, "Claims", n.ClaimsRowsRead, len(n.Claims.Rows), n.Claims.FieldMappings, n.Claims.UnmappedHeaders)

	errs, warnings := n.Counts()
	issues := n.Issues()
	fmt.Fprintf(w, "Issues: %d errors, %d warnings\n", errs, warnings)
	printIssues(w, model.SeverityError, issues)
	printIssues(w, model.SeverityWarning, issues)

	if errs > 0 {
		fmt.Fprintln(w, "\nResult: BLOCKED (error issues present; ingest needs --allow-errors)")
		os.Exit(exitcode.ValidationError)
	}
	fmt.Fprintln(w, "\nResult: OK")
	return nil
}

func printTable(w io.Writer, name string, read int64, kept int, mappings []model.FieldMapping, unmapped []string) {
	fmt.Fprintf(w, "%s: %d rows read, %d rows normalized\n", name, read, kept)
	for _, m := range mappings {
		if m.Header == nil {
			continue
		}
		line := fmt.Sprintf("  %-24s <- %q", m.Field, *m.Header)
		if len(m.Conflicts) > 0 {
			line += fmt.Sprintf(" (also matched %q)", m.Conflicts)
		}
		fmt.Fprintln(w, line)
	}
	if len(unmapped) > 0 {
		fmt.Fprintf(w, "  unmapped headers: %q\n", unmapped)
	}
	fmt.Fprintln(w)
}

func printIssues(w io.Writer, sev model.Severity, issues []model.Issue) {
	shown := 0
	total := 0
	for _, is := range issues {
		if is.Severity != sev {
			continue
		}
		total++
		if shown == maxIssuesPerSeverity {
			continue
		}
		shown++
		loc := is.Column
		if is.RowIndex != nil {
			loc = fmt.Sprintf("row %d, %s", *is.RowIndex, is.Column)
		}
		fmt.Fprintf(w, "  [%s] %s: %s (%s)\n", sev, is.Type, is.Message, loc)
	}
	if total > shown {
		fmt.Fprintf(w, "  ... %d more %s issues\n", total-shown, sev)
	}
}
