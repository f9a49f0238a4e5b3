package repository

import (
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
)

// ExportRepository defines the interface for serializing chart data and
// writing report artifacts. Write methods return the absolute path written.
type ExportRepository interface {
	// Chart payload serialization. SerializeCharts admits only plain text
	// primitives; ParseCharts inverts it losslessly.
	SerializeCharts(specs []entity.ChartSpec) ([]byte, error)
	ParseCharts(payload []byte) ([]entity.ChartSpec, error)

	// AssembleHTML merges the serialized chart payload with the styling
	// template into one self-contained document, written atomically.
	AssembleHTML(doc entity.ReportDocument, payload []byte, filename, outputDir string) (string, error)

	// Secondary exports
	ExportRecordsToCSV(set entity.RecordSet, schema entity.Schema, filename, outputDir string) (string, error)
	ExportAggregatesToCSV(result *entity.AggregationResult, filename, outputDir string) (string, error)
	ExportToJSON(doc entity.ReportDocument, filename, outputDir string) (string, error)
	ExportToPDF(doc entity.ReportDocument, filename, outputDir string) (string, error)
}
