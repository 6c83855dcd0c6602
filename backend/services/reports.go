package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReportTable is a flattened record list ready for export: one header row
// plus data rows, all stringified by the caller.
type ReportTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// CSV renders the table as comma-delimited text.
func (t ReportTable) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the table as a single-sheet spreadsheet.
func (t ReportTable) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Title
	if sheet == "" {
		sheet = "Reporte"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary renders the table as a plain-text document with one line per row,
// the closest thing to the printable report staff hand out.
func (t ReportTable) Summary(generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Title)
	fmt.Fprintf(&b, "Generado: %s\n", generatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Registros: %d\n\n", len(t.Rows))
	b.WriteString(strings.Join(t.Headers, " | "))
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	return b.String()
}
