package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

const (
	headerSearchRows = 10
	maxXLSRows       = 100000
)

// RequiredColumns must be present in the header row.
var RequiredColumns = []string{"NAMA", "NIK"}

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoWorksheet       = errors.New("no worksheet found")
	ErrEmptyWorksheet    = errors.New("worksheet is empty")
)

var (
	monthSeparated = regexp.MustCompile(`(202[2-9]|203[0-2])[-/](\d{1,2})`)
	monthCompact   = regexp.MustCompile(`(202[2-9]|203[0-2])(\d{2})`)
)

// Report describes a workbook as seen locally, before the backend parses it.
type Report struct {
	Filename       string   `json:"filename"`
	Format         string   `json:"format"`
	MIMEType       string   `json:"mime_type"`
	SheetName      string   `json:"sheet_name,omitempty"`
	Rows           int      `json:"rows"`
	HeaderRow      int      `json:"header_row"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	MonthColumns   []string `json:"month_columns"`
	DataRows       int      `json:"data_rows"`
}

// Valid reports whether every required column was found.
func (r *Report) Valid() bool {
	return r.HeaderRow > 0 && len(r.MissingColumns) == 0
}

// Inspect reads the first worksheet of data and locates its header row.
func Inspect(filename string, data []byte) (*Report, error) {
	report := &Report{
		Filename:       filename,
		Format:         strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		MIMEType:       mimetype.Detect(data).String(),
		Columns:        []string{},
		MissingColumns: []string{},
		MonthColumns:   []string{},
	}

	rows, sheet, err := readRows(report.Format, data)
	if err != nil {
		return nil, err
	}
	report.SheetName = sheet
	report.Rows = len(rows)

	header := findHeaderRow(rows)
	if header < 0 {
		report.MissingColumns = append(report.MissingColumns, RequiredColumns...)
		return report, nil
	}
	report.HeaderRow = header + 1

	nameCol := -1
	present := map[string]bool{}
	months := map[string]struct{}{}
	for i, cell := range rows[header] {
		col := NormalizeColumn(cell)
		if col == "" {
			continue
		}
		report.Columns = append(report.Columns, col)
		present[col] = true
		if col == "NAMA" && nameCol < 0 {
			nameCol = i
		}
		if key, ok := MonthKey(cell); ok {
			months[key] = struct{}{}
		}
	}

	for _, col := range RequiredColumns {
		if !present[col] {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	for key := range months {
		report.MonthColumns = append(report.MonthColumns, key)
	}
	sort.Strings(report.MonthColumns)

	for _, row := range rows[header+1:] {
		if nameCol < len(row) && strings.TrimSpace(row[nameCol]) != "" {
			report.DataRows++
		}
	}

	return report, nil
}

func readRows(format string, data []byte) ([][]string, string, error) {
	switch format {
	case "csv":
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read csv: %w", err)
		}
		if len(rows) == 0 {
			return nil, "", ErrEmptyWorksheet
		}
		return rows, "", nil

	case "xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, "", fmt.Errorf("failed to open xls: %w", err)
		}
		if workbook.NumSheets() == 0 {
			return nil, "", ErrNoWorksheet
		}
		rows := workbook.ReadAllCells(maxXLSRows)
		if len(rows) == 0 {
			return nil, "", ErrEmptyWorksheet
		}
		return rows, workbook.GetSheet(0).Name, nil

	case "xlsx":
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to open xlsx: %w", err)
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, "", ErrNoWorksheet
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}
		if len(rows) == 0 {
			return nil, "", ErrEmptyWorksheet
		}
		return rows, sheetName, nil

	default:
		return nil, "", ErrUnsupportedFormat
	}
}

// findHeaderRow returns the index of the first of the leading rows holding a
// NAMA cell, or -1.
func findHeaderRow(rows [][]string) int {
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		for _, cell := range rows[i] {
			if NormalizeColumn(cell) == "NAMA" {
				return i
			}
		}
	}
	return -1
}

// NormalizeColumn upper-cases a header cell and strips whitespace.
func NormalizeColumn(cell string) string {
	return strings.Join(strings.Fields(strings.ToUpper(cell)), "")
}

// MonthKey extracts a "YYYY-MM" key from a month column header such as
// "2024-01", "2024/1" or "202401".
func MonthKey(cell string) (string, bool) {
	cell = strings.TrimSpace(cell)
	for _, re := range []*regexp.Regexp{monthSeparated, monthCompact} {
		m := re.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		month, err := strconv.Atoi(m[2])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		return fmt.Sprintf("%s-%02d", m[1], month), true
	}
	return "", false
}
