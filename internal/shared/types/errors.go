package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoInputSource = errors.New("no input source given. Provide --input or --sample")
	ErrUnknownFormat = errors.New("unrecognized input format, expected .csv or .xlsx")
)

// ConfigError reports a configuration value outside its documented bounds.
// It is raised before any record is loaded.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v (%s)", e.Field, e.Value, e.Reason)
}

// LoadError reports an input that is absent, unreadable, empty or yields
// zero parseable rows. Fatal to the run.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error loading records from %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("error loading records from %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// EmptyWindowError reports a window that matched no records. Callers decide
// whether this is fatal or a "no data" display state.
type EmptyWindowError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyWindowError) Error() string {
	return fmt.Sprintf("no records between %s and %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// UnknownMetricError reports a metric request naming a field the schema does
// not carry. Collected per metric; other metrics in the batch still compute.
type UnknownMetricError struct {
	Metric string
	Field  string
}

func (e *UnknownMetricError) Error() string {
	if e.Field == "" || e.Field == e.Metric {
		return fmt.Sprintf("unknown metric %q", e.Metric)
	}
	return fmt.Sprintf("metric %q references unknown field %q", e.Metric, e.Field)
}

// ChartShapeError reports a chart request whose kind cannot encode the shape
// of the metric value it was given, or that names a metric absent from the
// aggregation result. The chart is skipped; the report proceeds.
type ChartShapeError struct {
	Chart  string
	Metric string
	Reason string
}

func (e *ChartShapeError) Error() string {
	return fmt.Sprintf("chart %q cannot be built from metric %q: %s", e.Chart, e.Metric, e.Reason)
}

// SerializationError reports a chart payload value that cannot be expressed
// as plain text primitives. Fatal: nothing is written.
type SerializationError struct {
	Chart string
	Path  string
	Value interface{}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("chart %q holds a non-primitive value at %s (%T)", e.Chart, e.Path, e.Value)
}

// AssemblyError reports a template/data mismatch or a failed artifact write.
// Fatal: any prior artifact stays untouched.
type AssemblyError struct {
	Reason string
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error assembling report: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("error assembling report: %s", e.Reason)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
