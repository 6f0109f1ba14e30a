package datasetread

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/becastil/costdash/internal/model"
)

// ReadXLSX reads one worksheet of a workbook. Cells arrive as their formatted
// text, so dates and currency look the way they do in the spreadsheet.
func ReadXLSX(path, sheet string) (model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return model.Dataset{}, ErrEmptyDataset
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}
