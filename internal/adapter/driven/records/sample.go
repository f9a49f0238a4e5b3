package records

import (
	"math/rand"
	"time"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
)

var (
	sampleAirlines = []string{"AA", "DL", "UA", "WN", "B6", "AS"}
	sampleStates   = []string{"CA", "TX", "FL", "NY", "IL", "GA", "WA", "CO"}
	delayTypes     = []string{"carrier", "weather", "nas", "security", "late_aircraft"}

	// Cumulative pick weights for delay types: carrier 30%, weather 20%,
	// nas 25%, security 5%, late_aircraft 20%.
	delayTypeWeights = []int{30, 50, 75, 80, 100}
)

// GenerateSample builds a synthetic flight record set: one event per flight,
// covering the given number of days ending at the reference date. The same
// seed always produces the identical set. Statuses partition each day's
// total exactly; only delayed flights carry delay minutes and a delay type.
func (r *RecordRepositoryImpl) GenerateSample(days int, seed int64, reference time.Time) (entity.RecordSet, entity.LoadReport) {
	rng := rand.New(rand.NewSource(seed))
	end := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)

	var recs []entity.Record
	for d := 0; d < days; d++ {
		date := end.AddDate(0, 0, -(days - 1 - d))

		total := 100 + rng.Intn(200)
		onTime := int(float64(total) * (0.70 + 0.20*rng.Float64()))
		cancelled := rng.Intn(maxInt(total/25, 1))
		diverted := rng.Intn(maxInt(total/50, 1))
		delayed := total - onTime - cancelled - diverted

		recs = appendSampleEvents(recs, rng, date, entity.StatusOnTime, onTime, false)
		recs = appendSampleEvents(recs, rng, date, entity.StatusDelayed, delayed, true)
		recs = appendSampleEvents(recs, rng, date, entity.StatusCancelled, cancelled, false)
		recs = appendSampleEvents(recs, rng, date, entity.StatusDiverted, diverted, false)
	}

	report := entity.LoadReport{
		Path:     "sample",
		RowsRead: len(recs),
		RowsKept: len(recs),
	}
	return entity.NewRecordSet(recs), report
}

func appendSampleEvents(recs []entity.Record, rng *rand.Rand, date time.Time, status string, n int, delayed bool) []entity.Record {
	for i := 0; i < n; i++ {
		rec := entity.Record{
			Date:   date,
			Status: status,
			State:  sampleStates[rng.Intn(len(sampleStates))],
			Categories: map[string]string{
				"airline": sampleAirlines[rng.Intn(len(sampleAirlines))],
			},
		}
		if delayed {
			rec.Categories["delay_type"] = pickDelayType(rng)
			rec.Numbers = map[string]float64{
				"delay_minutes": float64(15 + rng.Intn(61)),
			}
		}
		recs = append(recs, rec)
	}
	return recs
}

func pickDelayType(rng *rand.Rand) string {
	roll := rng.Intn(100)
	for i, limit := range delayTypeWeights {
		if roll < limit {
			return delayTypes[i]
		}
	}
	return delayTypes[len(delayTypes)-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
