package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// AssembleHTML merges the serialized chart payload with the styling template
// into one self-contained document. The payload is parsed back rather than
// trusted: a section chart with no matching serialized spec is a shape
// mismatch. The artifact is written atomically; a failed assembly leaves any
// prior file untouched.
func (r *ExportRepositoryImpl) AssembleHTML(doc entity.ReportDocument, payload []byte, filename, outputDir string) (string, error) {
	specs, err := r.ParseCharts(payload)
	if err != nil {
		return "", &types.AssemblyError{Reason: "cannot parse chart payload", Err: err}
	}

	byName := make(map[string]entity.ChartSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	figures := make(map[string]interface{})
	var sections []sectionView
	for _, section := range doc.Sections {
		view := sectionView{Title: section.Title}
		for _, chart := range section.Charts {
			spec, ok := byName[chart.Name]
			if !ok {
				return "", &types.AssemblyError{Reason: fmt.Sprintf("chart %q missing from serialized payload", chart.Name)}
			}
			id := "chart-" + spec.Name
			figures[id] = buildFigure(spec)
			view.Charts = append(view.Charts, chartBox{ID: id, Title: spec.Title})
		}
		sections = append(sections, view)
	}

	figuresJSON, err := r.SerializeFigures(figures)
	if err != nil {
		return "", err
	}

	view := reportView{
		Title:    doc.Title,
		Subtitle: fmt.Sprintf("%s profile · %s · %d records", doc.Profile, doc.Window.String(), doc.Load.RowsKept),
		Style:    template.CSS(reportCSS),
		Summary:  doc.Summary,
		Sections: sections,
		Notes:    doc.Notes,
		Footer: fmt.Sprintf("Generated %s · run %s · source rows kept %d of %d",
			doc.GeneratedAt.Format("2006-01-02 15:04 MST"), doc.RunID, doc.Load.RowsKept, doc.Load.RowsRead),
		FiguresJSON: template.JS(figuresJSON),
	}

	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", &types.AssemblyError{Reason: "invalid report template", Err: err}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return "", &types.AssemblyError{Reason: "template execution failed", Err: err}
	}

	outputFilename, err := generateFilename(filename, outputDir, "html")
	if err != nil {
		return "", &types.AssemblyError{Reason: "cannot prepare output path", Err: err}
	}

	if err := writeFileAtomic(outputFilename, buf.Bytes()); err != nil {
		return "", &types.AssemblyError{Reason: "cannot write artifact", Err: err}
	}

	return filepath.Abs(outputFilename)
}

// writeFileAtomic stages the content in a temp file in the same directory
// and renames it over the destination, so a partial write is never visible.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("error staging temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error renaming temp file: %w", err)
	}
	return nil
}

type chartBox struct {
	ID    string
	Title string
}

type sectionView struct {
	Title  string
	Charts []chartBox
}

type reportView struct {
	Title       string
	Subtitle    string
	Style       template.CSS
	Summary     []entity.SummaryCard
	Sections    []sectionView
	Notes       []string
	Footer      string
	FiguresJSON template.JS
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
    <style>{{.Style}}</style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>{{.Subtitle}}</p>
    </div>

    <div class="summary-cards">
        {{range .Summary}}<div class="card {{.Direction}}">
            <h3>{{.Label}}</h3>
            <div class="value">{{.Value}}</div>
            {{if .Delta}}<div class="delta">{{.Delta}}</div>{{end}}
        </div>
        {{end}}
    </div>

    {{range .Sections}}<div class="section">
        <h2>{{.Title}}</h2>
        <div class="chart-row">
            {{range .Charts}}<div class="chart-container"><div id="{{.ID}}"></div></div>
            {{end}}
        </div>
    </div>
    {{end}}
    {{if .Notes}}<div class="notes">
        {{range .Notes}}<p>{{.}}</p>
        {{end}}
    </div>{{end}}

    <div class="footer">
        <p>{{.Footer}}</p>
        <p>Data Source: FAA operational extracts</p>
    </div>

    <script>
        var figures = {{.FiguresJSON}};
        var config = {responsive: true};
        for (var id in figures) {
            Plotly.newPlot(id, figures[id].data, figures[id].layout, config);
        }
    </script>
</body>
</html>
`

const reportCSS = `
* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
    color: #eee;
    min-height: 100vh;
}
.header {
    background: linear-gradient(90deg, #0f3460 0%, #533483 100%);
    padding: 30px;
    text-align: center;
    box-shadow: 0 4px 20px rgba(0,0,0,0.3);
}
.header h1 {
    font-size: 2.5em;
    margin-bottom: 10px;
    text-shadow: 2px 2px 4px rgba(0,0,0,0.3);
}
.header p {
    font-size: 1.2em;
    opacity: 0.9;
}
.summary-cards {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 20px;
    padding: 30px;
    max-width: 1400px;
    margin: 0 auto;
}
.card {
    background: linear-gradient(145deg, #1e3a5f 0%, #2d4a6f 100%);
    border-radius: 12px;
    padding: 20px;
    text-align: center;
    box-shadow: 0 4px 15px rgba(0,0,0,0.2);
    transition: transform 0.2s;
}
.card:hover {
    transform: translateY(-4px);
}
.card h3 {
    font-size: 0.9em;
    text-transform: uppercase;
    letter-spacing: 1px;
    opacity: 0.8;
    margin-bottom: 8px;
}
.card .value {
    font-size: 2em;
    font-weight: bold;
    color: #4fc3f7;
}
.card.negative .value {
    color: #e74c3c;
}
.card.positive .value {
    color: #2ecc71;
}
.card .delta {
    margin-top: 6px;
    font-size: 0.9em;
    opacity: 0.85;
}
.section {
    max-width: 1400px;
    margin: 0 auto;
    padding: 20px 30px;
}
.section h2 {
    border-left: 4px solid #4fc3f7;
    padding-left: 12px;
    margin-bottom: 20px;
}
.chart-row {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(600px, 1fr));
    gap: 20px;
}
.chart-container {
    background: #1e3a5f;
    border-radius: 12px;
    padding: 15px;
    box-shadow: 0 4px 15px rgba(0,0,0,0.2);
}
.notes {
    max-width: 1400px;
    margin: 0 auto;
    padding: 10px 30px;
    color: #f39c12;
    font-size: 0.9em;
}
.footer {
    background: #0f3460;
    text-align: center;
    padding: 20px;
    margin-top: 30px;
    font-size: 0.9em;
    opacity: 0.8;
}
@media (max-width: 1300px) {
    .chart-row {
        grid-template-columns: 1fr;
    }
}
`
