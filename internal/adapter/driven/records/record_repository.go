package records

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/repository"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// RecordRepositoryImpl loads record sets from local CSV and XLSX files.
type RecordRepositoryImpl struct{}

// NewRecordRepository creates a new record repository.
func NewRecordRepository() repository.RecordRepository {
	return &RecordRepositoryImpl{}
}

// Accepted date layouts, tried in order. First match wins.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-06",
	time.RFC3339,
}

// Load reads the file once, maps its header against the schema and coerces
// every row. Rows without a parseable date are dropped and counted; numeric
// cells that are blank, unparseable or negative are treated as missing.
func (r *RecordRepositoryImpl) Load(ctx context.Context, path string, schema entity.Schema) (entity.RecordSet, entity.LoadReport, error) {
	report := entity.LoadReport{Path: path, DropReasons: map[string]int{}}

	if err := ctx.Err(); err != nil {
		return entity.RecordSet{}, report, err
	}

	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: fmt.Sprintf("unsupported extension %q", ext), Err: types.ErrUnknownFormat}
	}
	if err != nil {
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: "cannot read input", Err: err}
	}
	if len(rows) == 0 {
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: "file is empty"}
	}

	columnIndex, err := mapHeader(rows[0], schema)
	if err != nil {
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: "header does not match schema", Err: err}
	}

	dateCol, ok := schema.DateColumn()
	if !ok {
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: "schema has no date column"}
	}

	var parsed []entity.Record
	for _, row := range rows[1:] {
		report.RowsRead++

		if isBlankRow(row) {
			report.RowsDropped++
			report.DropReasons["empty_row"]++
			continue
		}

		rec, ok := parseRow(row, columnIndex, schema, dateCol, &report)
		if !ok {
			report.RowsDropped++
			continue
		}
		parsed = append(parsed, rec)
		report.RowsKept++
	}

	if len(parsed) == 0 {
		return entity.RecordSet{}, report, &types.LoadError{Path: path, Reason: "no parseable rows"}
	}

	return entity.NewRecordSet(parsed), report, nil
}

// readCSV reads the whole file once and decodes it with a sniffed delimiter.
func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks ';' over ',' when the first line favors it.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

// readXLSX reads the first sheet of a workbook.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// mapHeader resolves each schema column to its position in the file header.
// Matching is forgiving about case, spaces, hyphens and underscores, and
// consults the per-column alias list. A required column with no match fails.
func mapHeader(header []string, schema entity.Schema) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	index := make(map[string]int)
	for _, col := range schema.Columns {
		pos := -1
		candidates := append([]string{col.Name}, col.Aliases...)
		for _, cand := range candidates {
			want := normalizeHeader(cand)
			for i, h := range normalized {
				if h == want {
					pos = i
					break
				}
			}
			if pos >= 0 {
				break
			}
		}
		if pos < 0 {
			if col.Required {
				return nil, fmt.Errorf("required column %q not found in header", col.Name)
			}
			continue
		}
		index[col.Name] = pos
	}
	return index, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return h
}

// parseRow coerces one data row. ok is false when the row must be dropped.
func parseRow(row []string, columnIndex map[string]int, schema entity.Schema, dateCol entity.Column, report *entity.LoadReport) (entity.Record, bool) {
	cell := func(name string) (string, bool) {
		i, ok := columnIndex[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	rawDate, _ := cell(dateCol.Name)
	date, err := parseDate(rawDate)
	if err != nil {
		report.DropReasons["invalid_date"]++
		return entity.Record{}, false
	}

	rec := entity.Record{Date: date}

	for _, col := range schema.Columns {
		if col.Kind == entity.ColumnDate {
			continue
		}
		raw, present := cell(col.Name)

		switch col.Kind {
		case entity.ColumnStatus:
			if raw == "" {
				raw = col.EmptyValue
			}
			rec.Status = raw
		case entity.ColumnGeo:
			rec.State = strings.ToUpper(raw)
		case entity.ColumnCategory:
			if raw == "" {
				raw = col.EmptyValue
			}
			if raw != "" {
				if rec.Categories == nil {
					rec.Categories = make(map[string]string)
				}
				rec.Categories[col.Name] = raw
			}
		case entity.ColumnNumber:
			if !present {
				continue
			}
			v, perr := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if raw == "" || perr != nil || v < 0 {
				report.MissingNumeric++
				continue
			}
			if rec.Numbers == nil {
				rec.Numbers = make(map[string]float64)
			}
			rec.Numbers[col.Name] = v
		}
	}

	return rec, true
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
