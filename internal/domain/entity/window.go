package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrWindowInverted reports a window whose start falls after its end.
var ErrWindowInverted = errors.New("window start is after window end")

// Window is a closed date interval at day precision. A Window whose start is
// after its end contains nothing.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow builds a window from two dates, normalized to day precision.
// Fails when start is after end; bounds are never silently reordered.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: dateOnly(start), End: dateOnly(end)}
	if w.Start.After(w.End) {
		return Window{}, fmt.Errorf("%w: %s > %s", ErrWindowInverted,
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}
	return w, nil
}

// TrailingDays builds a window covering the given number of days ending at
// the reference date, inclusive.
func TrailingDays(days int, reference time.Time) Window {
	end := dateOnly(reference)
	return Window{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// Contains reports whether the date falls inside the window, both bounds
// inclusive. Comparison happens at day precision.
func (w Window) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the inclusive day count covered by the window.
func (w Window) Days() int {
	if w.Start.After(w.End) {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Intersect returns the overlap of two windows. ok is false when they are
// disjoint.
func (w Window) Intersect(o Window) (Window, bool) {
	start, end := w.Start, w.End
	if o.Start.After(start) {
		start = o.Start
	}
	if o.End.Before(end) {
		end = o.End
	}
	if start.After(end) {
		return Window{}, false
	}
	return Window{Start: start, End: end}, true
}

// SplitAt partitions the window at a boundary date into two disjoint
// sub-windows: [start, boundary) and [boundary, end]. Either side may come
// back empty (inverted) when the boundary falls outside the window.
func (w Window) SplitAt(boundary time.Time) (before, after Window) {
	b := dateOnly(boundary)
	before = Window{Start: w.Start, End: b.AddDate(0, 0, -1)}
	after = Window{Start: b, End: w.End}
	return before, after
}

func (w Window) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
