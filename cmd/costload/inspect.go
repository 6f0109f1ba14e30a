package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/becastil/costdash/internal/exitcode"
	"github.com/becastil/costdash/internal/logging"
	"github.com/becastil/costdash/internal/model"
	"github.com/becastil/costdash/internal/parquetio"
)

const inspectBatchSize = 1024

var (
	inspectFile string
	inspectKind string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a Parquet export (row count and month span)",
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFile, "file", "", "Path to budget.parquet or claims.parquet (required)")
	f.StringVar(&inspectKind, "kind", "budget", "Row kind: budget or claims")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

// monthSpan tracks the first and last month seen.
type monthSpan struct {
	first, last string
	months      map[string]int64
}

func (s *monthSpan) add(m string) {
	if s.months == nil {
		s.months = make(map[string]int64)
	}
	s.months[m]++
	if s.first == "" || m < s.first {
		s.first = m
	}
	if m > s.last {
		s.last = m
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	var (
		rows int64
		span monthSpan
		err  error
	)
	switch inspectKind {
	case "budget":
		rows, err = scanParquet(inspectFile, func(r *model.BudgetRow) { span.add(r.Month) })
	case "claims":
		rows, err = scanParquet(inspectFile, func(r *model.ClaimsRow) { span.add(r.ServiceMonth) })
	default:
		log.Error().Str("kind", inspectKind).Msg("--kind must be budget or claims")
		os.Exit(exitcode.UsageError)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read parquet file")
		os.Exit(exitcode.ValidationError)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:   %s\n", inspectFile)
	fmt.Fprintf(w, "Kind:   %s\n", inspectKind)
	fmt.Fprintf(w, "Rows:   %d\n", rows)
	if rows > 0 {
		fmt.Fprintf(w, "Months: %s .. %s (%d distinct)\n", span.first, span.last, len(span.months))
	}
	return nil
}

func scanParquet[T any](path string, visit func(*T)) (int64, error) {
	r, err := parquetio.Open[T](path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	buf := make([]T, inspectBatchSize)
	var total int64
	for {
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			visit(&buf[i])
		}
		total += int64(n)
		if errors.Is(readErr, io.EOF) {
			return total, nil
		}
		if readErr != nil {
			return total, readErr
		}
	}
}
