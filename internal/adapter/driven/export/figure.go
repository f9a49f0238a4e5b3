package export

import (
	"encoding/json"
	"fmt"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
)

// Default trace palette, applied when a spec carries no color hints.
var tracePalette = []string{
	"#4fc3f7", "#2ecc71", "#e74c3c", "#f39c12",
	"#9b59b6", "#1abc9c", "#e67e22", "#95a5a6",
}

// SerializeFigures encodes renderer-ready figure objects, enforcing the same
// primitive-only rule as the chart payload.
func (r *ExportRepositoryImpl) SerializeFigures(figures map[string]interface{}) ([]byte, error) {
	for _, id := range sortedKeys(figures) {
		if err := checkPrimitive(id, "figure", figures[id]); err != nil {
			return nil, err
		}
	}
	out, err := json.Marshal(figures)
	if err != nil {
		return nil, fmt.Errorf("error encoding figures: %w", err)
	}
	return out, nil
}

// buildFigure maps one ChartSpec onto a figure object: plain data and layout
// maps holding nothing but primitives. Deterministic for identical specs.
func buildFigure(spec entity.ChartSpec) map[string]interface{} {
	layout := darkLayout(spec.Title)
	var data []interface{}

	switch spec.Kind {
	case entity.ChartLine, entity.ChartStackedArea:
		for i, s := range spec.Series {
			trace := map[string]interface{}{
				"type": "scatter",
				"mode": "lines+markers",
				"name": s.Name,
				"x":    toInterfaceStrings(s.X),
				"y":    toInterfaceFloats(s.Y),
				"line": map[string]interface{}{"color": seriesColor(s, i)},
			}
			if spec.Kind == entity.ChartStackedArea {
				trace["mode"] = "lines"
				trace["stackgroup"] = "one"
			}
			data = append(data, trace)
		}

	case entity.ChartBar:
		for i, s := range spec.Series {
			trace := map[string]interface{}{
				"type": "bar",
				"name": s.Name,
			}
			if spec.Horizontal {
				trace["orientation"] = "h"
				trace["x"] = toInterfaceFloats(s.Y)
				trace["y"] = toInterfaceStrings(s.X)
				layout["yaxis"] = map[string]interface{}{"categoryorder": "total ascending"}
			} else {
				trace["x"] = toInterfaceStrings(s.X)
				trace["y"] = toInterfaceFloats(s.Y)
			}
			trace["marker"] = barMarker(spec, s, i)
			data = append(data, trace)
		}

	case entity.ChartPie:
		for _, s := range spec.Series {
			trace := map[string]interface{}{
				"type":   "pie",
				"labels": toInterfaceStrings(s.Labels),
				"values": toInterfaceFloats(s.Values),
			}
			if colors := labelColors(spec.Colors, s.Labels); colors != nil {
				trace["marker"] = map[string]interface{}{"colors": colors}
			}
			data = append(data, trace)
		}

	case entity.ChartGeoScatter:
		for _, s := range spec.Series {
			maxVal := 0.0
			for _, v := range s.Values {
				if v > maxVal {
					maxVal = v
				}
			}
			sizeref := 1.0
			if maxVal > 0 {
				sizeref = 2.0 * maxVal / (38.0 * 38.0)
			}
			text := make([]interface{}, len(s.Locations))
			for i, loc := range s.Locations {
				text[i] = fmt.Sprintf("%s: %s", loc, formatNumber(s.Values[i]))
			}
			data = append(data, map[string]interface{}{
				"type":         "scattergeo",
				"locationmode": "USA-states",
				"locations":    toInterfaceStrings(s.Locations),
				"text":         text,
				"hoverinfo":    "text",
				"marker": map[string]interface{}{
					"size":     toInterfaceFloats(s.Values),
					"sizeref":  sizeref,
					"sizemode": "area",
					"color":    "#e74c3c",
					"line":     map[string]interface{}{"color": "#eee", "width": 0.5},
				},
			})
		}
		layout["geo"] = map[string]interface{}{
			"scope":     "usa",
			"bgcolor":   "rgba(0,0,0,0)",
			"lakecolor": "#1e3a5f",
			"landcolor": "#2d4a6f",
		}
	}

	if spec.XTitle != "" {
		layout["xaxis"] = mergeAxis(layout["xaxis"], spec.XTitle)
	}
	if spec.YTitle != "" && !spec.Horizontal {
		layout["yaxis"] = mergeAxis(layout["yaxis"], spec.YTitle)
	}
	if len(spec.Series) > 1 {
		layout["showlegend"] = true
	}

	if spec.Target != nil {
		layout["shapes"] = []interface{}{
			map[string]interface{}{
				"type": "line",
				"xref": "paper",
				"x0":   0.0,
				"x1":   1.0,
				"y0":   spec.Target.Value,
				"y1":   spec.Target.Value,
				"line": map[string]interface{}{"dash": "dash", "color": "#f39c12", "width": 2},
			},
		}
		if spec.Target.Label != "" {
			layout["annotations"] = []interface{}{
				map[string]interface{}{
					"xref":      "paper",
					"x":         1.0,
					"y":         spec.Target.Value,
					"text":      spec.Target.Label,
					"showarrow": false,
					"font":      map[string]interface{}{"color": "#f39c12"},
					"yshift":    10,
				},
			}
		}
	}

	for _, key := range sortedKeys(spec.Extra) {
		layout[key] = spec.Extra[key]
	}

	return map[string]interface{}{"data": data, "layout": layout}
}

func darkLayout(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":         title,
		"paper_bgcolor": "rgba(30, 58, 95, 0)",
		"plot_bgcolor":  "rgba(30, 58, 95, 0)",
		"font":          map[string]interface{}{"color": "#eee", "size": 12},
		"margin":        map[string]interface{}{"t": 60, "b": 80, "l": 100, "r": 40},
		"height":        400,
	}
}

func mergeAxis(existing interface{}, title string) map[string]interface{} {
	axis, ok := existing.(map[string]interface{})
	if !ok {
		axis = map[string]interface{}{}
	}
	axis["title"] = title
	return axis
}

func seriesColor(s entity.Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return tracePalette[i%len(tracePalette)]
}

// barMarker colors bars per label when the spec maps colors, otherwise by
// series position.
func barMarker(spec entity.ChartSpec, s entity.Series, i int) map[string]interface{} {
	if colors := labelColors(spec.Colors, s.X); colors != nil {
		return map[string]interface{}{"color": colors}
	}
	return map[string]interface{}{"color": seriesColor(s, i)}
}

// labelColors resolves a color-hint map against an ordered label list.
// Labels without a hint fall back to the palette.
func labelColors(hints map[string]string, labels []string) []interface{} {
	if len(hints) == 0 {
		return nil
	}
	out := make([]interface{}, len(labels))
	for i, label := range labels {
		if c, ok := hints[label]; ok {
			out[i] = c
		} else {
			out[i] = tracePalette[i%len(tracePalette)]
		}
	}
	return out
}

func toInterfaceStrings(vals []string) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func toInterfaceFloats(vals []float64) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
