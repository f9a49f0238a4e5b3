package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/repository"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportRecordsToCSV writes the filtered record set as plain delimited text,
// one row per record, columns in schema order.
func (r *ExportRepositoryImpl) ExportRecordsToCSV(set entity.RecordSet, schema entity.Schema, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		headers = append(headers, col.Name)
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for i := 0; i < set.Len(); i++ {
		rec := set.At(i)
		row := make([]string, 0, len(schema.Columns))
		for _, col := range schema.Columns {
			switch col.Kind {
			case entity.ColumnDate:
				row = append(row, rec.Date.Format("2006-01-02"))
			case entity.ColumnStatus:
				row = append(row, rec.Status)
			case entity.ColumnGeo:
				row = append(row, rec.State)
			case entity.ColumnCategory:
				row = append(row, rec.Category(col.Name))
			case entity.ColumnNumber:
				if v, ok := rec.Number(col.Name); ok {
					row = append(row, formatNumber(v))
				} else {
					row = append(row, "")
				}
			}
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportAggregatesToCSV writes every computed metric in long form:
// metric, kind, bucket, label, value.
func (r *ExportRepositoryImpl) ExportAggregatesToCSV(result *entity.AggregationResult, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"metric", "kind", "bucket", "label", "value"}); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, name := range result.Names() {
		value, _ := result.Value(name)
		rows := aggregateRows(name, value)
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				return "", fmt.Errorf("error writing CSV record: %w", err)
			}
		}
	}

	return filepath.Abs(outputFilename)
}

func aggregateRows(name string, value entity.MetricValue) [][]string {
	kind := string(value.Kind)
	switch value.Kind {
	case entity.MetricSeries:
		rows := make([][]string, 0, len(value.Series))
		for _, p := range value.Series {
			rows = append(rows, []string{name, kind, p.Date.Format("2006-01-02"), "", formatNumber(p.Value)})
		}
		return rows
	case entity.MetricBreakdown:
		rows := make([][]string, 0, len(value.Breakdown))
		for _, e := range value.Breakdown {
			rows = append(rows, []string{name, kind, "", e.Label, formatNumber(e.Value)})
		}
		return rows
	case entity.MetricComparison:
		if value.Comparison == nil {
			return nil
		}
		c := value.Comparison
		rows := [][]string{
			{name, kind, "", c.BeforeLabel, formatNumber(c.Before)},
			{name, kind, "", c.AfterLabel, formatNumber(c.After)},
		}
		if c.PercentChange != nil {
			rows = append(rows, []string{name, kind, "", "percent_change", formatNumber(*c.PercentChange)})
		}
		return rows
	default:
		return [][]string{{name, kind, "", "", formatNumber(value.Scalar)}}
	}
}

// ExportToJSON writes the full report document, metadata included.
func (r *ExportRepositoryImpl) ExportToJSON(doc entity.ReportDocument, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes a text-only rendering of the report: summary cards and
// per-section chart data as tables. Charts are never rasterized.
func (r *ExportRepositoryImpl) ExportToPDF(doc entity.ReportDocument, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{30, 58, 95}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", doc.Title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  %s profile | %s | %d records", doc.Profile, doc.Window.String(), doc.Load.RowsKept)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	summaryStr := ""
	for _, card := range doc.Summary {
		line := fmt.Sprintf("%s: %s", card.Label, card.Value)
		if card.Delta != "" {
			line += fmt.Sprintf(" (%s)", card.Delta)
		}
		summaryStr += line + "\n"
	}
	drawSection("Summary", strings.TrimSpace(summaryStr))

	for _, section := range doc.Sections {
		content := ""
		for _, chart := range section.Charts {
			content += chart.Title + "\n" + describeChart(chart) + "\n"
		}
		drawSection(section.Title, strings.TrimSpace(content))
	}

	if len(doc.Notes) > 0 {
		drawSection("Notes", cleanRichTags(strings.Join(doc.Notes, "\n")))
	}

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by FAA Dashboard | %s | run %s", doc.GeneratedAt.Format("2006-01-02"), doc.RunID)
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// describeChart renders one chart's data as indented text lines.
func describeChart(spec entity.ChartSpec) string {
	var b strings.Builder
	for _, s := range spec.Series {
		switch spec.Kind {
		case entity.ChartPie:
			for i, label := range s.Labels {
				if i < len(s.Values) {
					fmt.Fprintf(&b, "  %s: %s\n", label, formatNumber(s.Values[i]))
				}
			}
		case entity.ChartGeoScatter:
			for i, loc := range s.Locations {
				if i < len(s.Values) {
					fmt.Fprintf(&b, "  %s: %s\n", loc, formatNumber(s.Values[i]))
				}
			}
		case entity.ChartBar:
			for i, x := range s.X {
				if i < len(s.Y) {
					fmt.Fprintf(&b, "  %s: %s\n", x, formatNumber(s.Y[i]))
				}
			}
		default:
			if len(s.Y) == 0 {
				continue
			}
			min, max := s.Y[0], s.Y[0]
			for _, v := range s.Y[1:] {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			name := s.Name
			if name == "" {
				name = spec.Name
			}
			fmt.Fprintf(&b, "  %s: %d points, min %s, max %s\n", name, len(s.Y), formatNumber(min), formatNumber(max))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatNumber trims trailing zeros so counts stay integral in text output.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// generateFilename builds a unique timestamped file name and ensures the
// output directory exists.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regexes for stripping pterm rich tags and ANSI color sequences that may
// leak into exported strings.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags removes pterm formatting tags and ANSI sequences.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

// sortedKeys returns map keys in deterministic order.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
