package telemetry

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads the first sheet of an .xlsx/.xls workbook, converts
// it to the same delimited-text form Parse accepts, and runs the identical
// parse routine. There is no spreadsheet-specific field handling; the CSV
// path is the single source of truth for field semantics.
func ParseWorkbook(r io.Reader) ([]Sample, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	// GetRows drops trailing empty cells, so a row whose last column is
	// blank would come back narrower than the header and be discarded as
	// short. Pad every row to the header's width; the blank fields parse
	// to 0 like their CSV counterparts.
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	var b strings.Builder
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return Parse(b.String()), nil
}
