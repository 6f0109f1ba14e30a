// Package parquetio exports canonical rows to Parquet and reads them back.
package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/becastil/costdash/internal/model"
)

// WriteBudget writes canonical budget rows to path.
func WriteBudget(path string, rows []model.BudgetRow) error {
	return write(path, rows)
}

// WriteClaims writes canonical claims rows to path.
func WriteClaims(path string, rows []model.ClaimsRow) error {
	return write(path, rows)
}

func write[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
