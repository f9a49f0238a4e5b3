package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// chartPayload is the textual wire form of the chart set.
type chartPayload struct {
	Version int                `json:"version"`
	Charts  []entity.ChartSpec `json:"charts"`
}

// SerializeCharts encodes the chart specs as pretty-printed JSON. Every
// value is checked first: only strings, booleans, finite numbers, nil, and
// arrays or string-keyed maps of those are admitted. Binary content never
// enters the payload.
func (r *ExportRepositoryImpl) SerializeCharts(specs []entity.ChartSpec) ([]byte, error) {
	for _, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
	}

	payload, err := json.MarshalIndent(chartPayload{Version: 1, Charts: specs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding chart payload: %w", err)
	}
	return payload, nil
}

// ParseCharts inverts SerializeCharts losslessly.
func (r *ExportRepositoryImpl) ParseCharts(payload []byte) ([]entity.ChartSpec, error) {
	var p chartPayload
	decoder := json.NewDecoder(bytes.NewReader(payload))
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("error parsing chart payload: %w", err)
	}
	return p.Charts, nil
}

// validateSpec walks every value a spec carries. The typed fields only need
// their floats checked for NaN/Inf; the open-typed Extra hints get the full
// primitive walk.
func validateSpec(spec entity.ChartSpec) error {
	for i, s := range spec.Series {
		if err := checkFloats(spec.Name, fmt.Sprintf("series[%d].y", i), s.Y); err != nil {
			return err
		}
		if err := checkFloats(spec.Name, fmt.Sprintf("series[%d].values", i), s.Values); err != nil {
			return err
		}
	}
	if spec.Target != nil {
		if err := checkFloat(spec.Name, "target.value", spec.Target.Value); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(spec.Extra) {
		if err := checkPrimitive(spec.Name, "extra."+key, spec.Extra[key]); err != nil {
			return err
		}
	}
	return nil
}

// checkPrimitive accepts plain text representable values and recurses into
// arrays and string-keyed maps. Everything else, byte slices included, is a
// SerializationError.
func checkPrimitive(chart, path string, v interface{}) error {
	switch val := v.(type) {
	case nil, string, bool:
		return nil
	case float64:
		return checkFloat(chart, path, val)
	case float32:
		return checkFloat(chart, path, float64(val))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case []interface{}:
		for i, item := range val {
			if err := checkPrimitive(chart, fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		return nil
	case []float64:
		return checkFloats(chart, path, val)
	case map[string]interface{}:
		for _, key := range sortedKeys(val) {
			if err := checkPrimitive(chart, path+"."+key, val[key]); err != nil {
				return err
			}
		}
		return nil
	default:
		return &types.SerializationError{Chart: chart, Path: path, Value: v}
	}
}

func checkFloats(chart, path string, vals []float64) error {
	for i, v := range vals {
		if err := checkFloat(chart, fmt.Sprintf("%s[%d]", path, i), v); err != nil {
			return err
		}
	}
	return nil
}

func checkFloat(chart, path string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &types.SerializationError{Chart: chart, Path: path, Value: v}
	}
	return nil
}
