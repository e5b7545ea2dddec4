// Package output serializes extracted card records as JSON, CSV and XLSX.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperifyio/cardextract/internal/record"
)

// Format selects which artifacts are written.
type Format string

const (
	JSON  Format = "json"
	CSV   Format = "csv"
	Excel Format = "excel"
	All   Format = "all"
)

// SheetName is the worksheet that holds the records in XLSX output.
const SheetName = "Sheet1"

// ErrUnknownFormat is returned by ParseFormat for anything but json, csv,
// excel or all.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, CSV, Excel, All:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Expand returns the concrete formats in write order.
func (f Format) Expand() []Format {
	if f == All {
		return []Format{JSON, CSV, Excel}
	}
	return []Format{f}
}

// Ext is the file extension for a concrete format.
func (f Format) Ext() string {
	switch f {
	case JSON:
		return ".json"
	case CSV:
		return ".csv"
	case Excel:
		return ".xlsx"
	}
	return ""
}

// WriteJSON writes a 4-space indented array. Non-ASCII text and markup
// characters are written as-is.
func WriteJSON(w io.Writer, recs []record.Record) error {
	if recs == nil {
		recs = []record.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// table flattens records into a header and rows over the union of fields.
// Null and absent fields both become empty cells.
func table(recs []record.Record) ([]string, [][]string) {
	cols := record.Columns(recs)
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Text(c)
		}
		rows = append(rows, row)
	}
	return cols, rows
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, recs []record.Record) error {
	cols, rows := table(recs)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX writes the same table as WriteCSV into a single worksheet.
func WriteXLSX(w io.Writer, recs []record.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	cols, rows := table(recs)
	for i, c := range cols {
		if err := setCell(f, i+1, 1, c); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for i, v := range row {
			if v == "" {
				continue
			}
			if err := setCell(f, i+1, r+2, v); err != nil {
				return err
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx cell: %w", err)
	}
	if err := f.SetCellStr(SheetName, cell, v); err != nil {
		return fmt.Errorf("xlsx cell %s: %w", cell, err)
	}
	return nil
}
