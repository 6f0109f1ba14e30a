// Package datasetread loads uploaded budget and claims spreadsheets into raw
// datasets for normalization.
package datasetread

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/becastil/costdash/internal/model"
)

// ErrEmptyDataset is returned when an input has no header row.
var ErrEmptyDataset = errors.New("dataset has no header row")

// Open reads path as CSV or XLSX based on its extension. sheet selects the
// worksheet of an XLSX file; empty means the first sheet.
func Open(path, sheet string) (model.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		ds, err := ReadCSV(f)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("read %s: %w", path, err)
		}
		return ds, nil
	case ".xlsx", ".xlsm":
		ds, err := ReadXLSX(path, sheet)
		if err != nil {
			return model.Dataset{}, fmt.Errorf("read %s: %w", path, err)
		}
		return ds, nil
	}
	return model.Dataset{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
}

// fromRecords builds a dataset from a header record and data records. Rows in
// which every cell is blank are dropped. Short rows are padded with empty
// cells and extra cells are ignored. When two headers are spelled identically
// the first column's value is kept.
func fromRecords(records [][]string) (model.Dataset, error) {
	if len(records) == 0 {
		return model.Dataset{}, ErrEmptyDataset
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	if len(headers) == 0 {
		return model.Dataset{}, ErrEmptyDataset
	}

	ds := model.Dataset{Headers: headers, Rows: make([]model.Row, 0, len(records)-1)}
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make(model.Row, len(headers))
		for i, h := range headers {
			if _, dup := row[h]; dup || h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
