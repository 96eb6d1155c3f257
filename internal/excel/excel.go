// Package excel wraps the xlsx plumbing both directions: reading uploaded
// workbooks into plain string tables and writing report downloads with the
// house header styling.
package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Data"

// Sheet is the first worksheet of an uploaded workbook, headers trimmed and
// rows padded to header width.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// HeaderIndex returns the column position of name, or -1.
func (s *Sheet) HeaderIndex(name string) int {
	for i, h := range s.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, header), "" when the column is absent.
func (s *Sheet) Cell(row int, header string) string {
	idx := s.HeaderIndex(header)
	if idx < 0 || row < 0 || row >= len(s.Rows) {
		return ""
	}
	return s.Rows[row][idx]
}

// ParseSheet reads the first worksheet: row one is headers, the rest data.
// Fully blank rows are dropped; short rows are padded so every row has a cell
// per header.
func ParseSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return &Sheet{}, nil
	}

	sheet := &Sheet{}
	for _, h := range rows[0] {
		sheet.Headers = append(sheet.Headers, strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		padded := make([]string, len(sheet.Headers))
		for i := range padded {
			if i < len(row) {
				padded[i] = row[i]
			}
		}
		sheet.Rows = append(sheet.Rows, padded)
	}

	return sheet, nil
}

// BuildWorkbook writes headers plus rows to a single "Data" sheet with the
// bold white centered header on the blue fill the store's exports carry.
func BuildWorkbook(headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if len(headers) == 0 {
		buf, err := f.WriteToBuffer()
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, style); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
