package entity

import "time"

// Record represents one observation row: a single flight-performance or
// wildlife-strike event. Values are read-only after loading.
type Record struct {
	Date       time.Time          `json:"date"`
	Status     string             `json:"status"`
	State      string             `json:"state,omitempty"`
	Categories map[string]string  `json:"categories,omitempty"`
	Numbers    map[string]float64 `json:"numbers,omitempty"`
}

// Category returns the value of a categorical field.
func (r Record) Category(name string) string {
	return r.Categories[name]
}

// Number returns the value of a numeric field and whether it was present
// and parseable in the source row. Missing values are never zero-filled.
func (r Record) Number(name string) (float64, bool) {
	v, ok := r.Numbers[name]
	return v, ok
}

// RecordSet is an ordered, immutable collection of Records. Natural row
// order is preserved through every transformation.
type RecordSet struct {
	records []Record
}

// NewRecordSet builds a RecordSet over the given records.
func NewRecordSet(records []Record) RecordSet {
	return RecordSet{records: records}
}

// Len returns the number of records.
func (s RecordSet) Len() int {
	return len(s.records)
}

// IsEmpty reports whether the set holds no records.
func (s RecordSet) IsEmpty() bool {
	return len(s.records) == 0
}

// At returns the record at position i.
func (s RecordSet) At(i int) Record {
	return s.records[i]
}

// All returns a copy of the underlying records, preserving order.
func (s RecordSet) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Filter returns a new RecordSet holding only the records whose date falls
// inside the window, both bounds inclusive. Pure set intersection: order is
// preserved and the receiver is never modified.
func (s RecordSet) Filter(w Window) RecordSet {
	var kept []Record
	for _, r := range s.records {
		if w.Contains(r.Date) {
			kept = append(kept, r)
		}
	}
	return RecordSet{records: kept}
}

// Span returns the earliest and latest record dates. ok is false for an
// empty set.
func (s RecordSet) Span() (min, max time.Time, ok bool) {
	if len(s.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = s.records[0].Date, s.records[0].Date
	for _, r := range s.records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, true
}

// Latest returns the newest record date. ok is false for an empty set.
func (s RecordSet) Latest() (time.Time, bool) {
	_, max, ok := s.Span()
	return max, ok
}

// LoadReport summarizes one loading pass over a source file.
type LoadReport struct {
	Path           string         `json:"path,omitempty"`
	RowsRead       int            `json:"rows_read"`
	RowsKept       int            `json:"rows_kept"`
	RowsDropped    int            `json:"rows_dropped"`
	MissingNumeric int            `json:"missing_numeric,omitempty"`
	DropReasons    map[string]int `json:"drop_reasons,omitempty"`
}
