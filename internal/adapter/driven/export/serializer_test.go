package export

import (
	"encoding/json"
	"math"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

func sampleSpecs() []entity.ChartSpec {
	return []entity.ChartSpec{
		{
			Name:  "on-time-trend",
			Title: "On-Time Performance",
			Kind:  entity.ChartLine,
			Series: []entity.Series{
				{
					Name:  "On-Time %",
					X:     []string{"2024-03-01", "2024-03-02", "2024-03-03"},
					Y:     []float64{81.3, 79.9, 84.2},
					Color: "#2ecc71",
				},
			},
			XTitle: "Date",
			YTitle: "Percent",
			Target: &entity.TargetLine{Value: 80, Label: "Target: 80%"},
			Extra:  map[string]interface{}{"hovermode": "x unified", "autosize": true, "bargap": 0.2},
		},
		{
			Name:  "status-distribution",
			Title: "Flight Status",
			Kind:  entity.ChartPie,
			Series: []entity.Series{
				{Labels: []string{"on_time", "delayed"}, Values: []float64{80, 20}},
			},
			Colors: map[string]string{"on_time": "#2ecc71", "delayed": "#f39c12"},
		},
		{
			Name:  "strikes-by-state",
			Title: "Strikes by State",
			Kind:  entity.ChartGeoScatter,
			Series: []entity.Series{
				{Locations: []string{"CA", "TX"}, Values: []float64{12, 7}},
			},
		},
	}
}

func TestSerializeChartsRoundTrip(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	specs := sampleSpecs()

	payload, err := repo.SerializeCharts(specs)
	require.NoError(t, err)

	parsed, err := repo.ParseCharts(payload)
	require.NoError(t, err)
	assert.Equal(t, specs, parsed, "parsing must invert serialization exactly")
}

func TestSerializeChartsProducesTextualJSON(t *testing.T) {
	repo := &ExportRepositoryImpl{}

	payload, err := repo.SerializeCharts(sampleSpecs())
	require.NoError(t, err)

	assert.True(t, json.Valid(payload))
	assert.True(t, utf8.Valid(payload))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(1), decoded["version"])
	assert.Len(t, decoded["charts"], 3)
}

func TestSerializeChartsIsDeterministic(t *testing.T) {
	repo := &ExportRepositoryImpl{}

	a, err := repo.SerializeCharts(sampleSpecs())
	require.NoError(t, err)
	b, err := repo.SerializeCharts(sampleSpecs())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSerializeChartsRejectsBinaryValues(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	specs := sampleSpecs()
	specs[0].Extra = map[string]interface{}{"thumbnail": []byte{0x89, 0x50, 0x4e, 0x47}}

	_, err := repo.SerializeCharts(specs)
	var serErr *types.SerializationError
	require.ErrorAs(t, err, &serErr)
	assert.Equal(t, "on-time-trend", serErr.Chart)
	assert.Contains(t, serErr.Path, "thumbnail")
}

func TestSerializeChartsRejectsNestedBinaryValues(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	specs := sampleSpecs()
	specs[1].Extra = map[string]interface{}{
		"annotations": []interface{}{
			map[string]interface{}{"text": "ok", "icon": []byte{0x01}},
		},
	}

	_, err := repo.SerializeCharts(specs)
	var serErr *types.SerializationError
	require.ErrorAs(t, err, &serErr)
	assert.Equal(t, "status-distribution", serErr.Chart)
	assert.Contains(t, serErr.Path, "icon")
}

func TestSerializeChartsRejectsNonFiniteNumbers(t *testing.T) {
	repo := &ExportRepositoryImpl{}

	t.Run("NaN in series", func(t *testing.T) {
		specs := sampleSpecs()
		specs[0].Series[0].Y[1] = math.NaN()

		_, err := repo.SerializeCharts(specs)
		var serErr *types.SerializationError
		require.ErrorAs(t, err, &serErr)
		assert.Contains(t, serErr.Path, "series[0].y[1]")
	})

	t.Run("Inf in target", func(t *testing.T) {
		specs := sampleSpecs()
		specs[0].Target = &entity.TargetLine{Value: math.Inf(1)}

		_, err := repo.SerializeCharts(specs)
		var serErr *types.SerializationError
		require.ErrorAs(t, err, &serErr)
		assert.Contains(t, serErr.Path, "target.value")
	})
}

func TestSerializeChartsAllowsNestedPrimitives(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	specs := sampleSpecs()
	specs[0].Extra = map[string]interface{}{
		"legend": map[string]interface{}{
			"orientation": "h",
			"x":           0.5,
			"traceorder":  []interface{}{"normal", "reversed"},
		},
		"ticks": []float64{0, 25, 50, 75, 100},
		"names": []string{"a", "b"},
	}

	_, err := repo.SerializeCharts(specs)
	assert.NoError(t, err)
}

func TestParseChartsRejectsMalformedPayload(t *testing.T) {
	repo := &ExportRepositoryImpl{}

	_, err := repo.ParseCharts([]byte(`{"version": 1, "charts": [`))
	assert.Error(t, err)
}
