package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFlightCSV(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"date,status,delay_type,delay_minutes,airline,origin\n"+
			"2024-03-01,on_time,,,AA,ca\n"+
			"2024-03-01,delayed,weather,45,DL,tx\n"+
			"2024-03-02,cancelled,,,UA,ny\n")

	repo := NewRecordRepository()
	set, report, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 3, report.RowsRead)
	assert.Equal(t, 3, report.RowsKept)
	assert.Equal(t, 0, report.RowsDropped)

	first := set.At(0)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, entity.StatusOnTime, first.Status)
	assert.Equal(t, "CA", first.State, "geo values are upper-cased")
	assert.Equal(t, "AA", first.Category("airline"))

	second := set.At(1)
	assert.Equal(t, entity.StatusDelayed, second.Status)
	assert.Equal(t, "weather", second.Category("delay_type"))
	delay, ok := second.Number("delay_minutes")
	require.True(t, ok)
	assert.Equal(t, 45.0, delay)

	_, ok = first.Number("delay_minutes")
	assert.False(t, ok, "blank numeric cells stay absent")
}

func TestLoadMapsHeaderAliases(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"FL_DATE,Flight Status,Cause,Arr Delay,Carrier,Origin State\n"+
			"2024-03-01,delayed,carrier,30,WN,FL\n")

	repo := NewRecordRepository()
	set, _, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	rec := set.At(0)
	assert.Equal(t, entity.StatusDelayed, rec.Status)
	assert.Equal(t, "carrier", rec.Category("delay_type"))
	assert.Equal(t, "WN", rec.Category("airline"))
	assert.Equal(t, "FL", rec.State)
	delay, ok := rec.Number("delay_minutes")
	require.True(t, ok)
	assert.Equal(t, 30.0, delay)
}

func TestLoadAcceptsMixedDateFormats(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"date,status\n"+
			"2024-03-01,on_time\n"+
			"03/15/2024,delayed\n"+
			"2024/04/02,on_time\n"+
			"2024-05-01 08:30:00,delayed\n"+
			"2024-06-01T10:00:00Z,on_time\n")

	repo := NewRecordRepository()
	set, report, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)

	assert.Equal(t, 5, set.Len())
	assert.Equal(t, 0, report.RowsDropped)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(set.At(1).Date.Year(), set.At(1).Date.Month(), set.At(1).Date.Day(), 0, 0, 0, 0, time.UTC))
}

func TestLoadDropsRowsWithoutDates(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"date,status\n"+
			"2024-03-01,on_time\n"+
			"not-a-date,delayed\n"+
			",cancelled\n"+
			"   ,   \n"+
			"2024-03-02,delayed\n")

	repo := NewRecordRepository()
	set, report, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 5, report.RowsRead)
	assert.Equal(t, 2, report.RowsKept)
	assert.Equal(t, 3, report.RowsDropped)
	assert.Equal(t, 2, report.DropReasons["invalid_date"])
	assert.Equal(t, 1, report.DropReasons["empty_row"])
}

func TestLoadCountsMissingNumerics(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"date,status,delay_minutes\n"+
			"2024-03-01,delayed,\n"+
			"2024-03-01,delayed,-10\n"+
			"2024-03-01,delayed,soon\n"+
			"2024-03-01,delayed,\"1,234\"\n")

	repo := NewRecordRepository()
	set, report, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)

	// Blank, negative and unparseable cells are missing, not zero. The rows
	// themselves survive.
	assert.Equal(t, 4, set.Len())
	assert.Equal(t, 3, report.MissingNumeric)

	for i := 0; i < 3; i++ {
		_, ok := set.At(i).Number("delay_minutes")
		assert.False(t, ok, "row %d should have no delay value", i)
	}
	v, ok := set.At(3).Number("delay_minutes")
	require.True(t, ok)
	assert.Equal(t, 1234.0, v, "thousands separators are stripped")
}

func TestLoadSniffsSemicolonDelimiter(t *testing.T) {
	path := writeInput(t, "flights.csv",
		"date;status;airline\n"+
			"2024-03-01;on_time;AA\n"+
			"2024-03-02;delayed;DL\n")

	repo := NewRecordRepository()
	set, _, err := repo.Load(context.Background(), path, entity.FlightSchema())
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "AA", set.At(0).Category("airline"))
}

func TestLoadWildlifeDamageDefaults(t *testing.T) {
	path := writeInput(t, "strikes.csv",
		"incident_date,damage,species,state\n"+
			"2023-07-01,,Gull,wa\n"+
			"2023-07-02,Substantial,Hawk,or\n")

	repo := NewRecordRepository()
	set, _, err := repo.Load(context.Background(), path, entity.WildlifeSchema())
	require.NoError(t, err)

	assert.Equal(t, "None", set.At(0).Status, "blank damage reads as None")
	assert.Equal(t, "Substantial", set.At(1).Status)
	assert.Equal(t, "WA", set.At(0).State)
}

func TestLoadFailures(t *testing.T) {
	repo := NewRecordRepository()
	schema := entity.FlightSchema()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, _, err := repo.Load(ctx, filepath.Join(t.TempDir(), "nope.csv"), schema)
		var loadErr *types.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeInput(t, "flights.parquet", "not a table")
		_, _, err := repo.Load(ctx, path, schema)
		var loadErr *types.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.ErrorIs(t, err, types.ErrUnknownFormat)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeInput(t, "flights.csv", "")
		_, _, err := repo.Load(ctx, path, schema)
		var loadErr *types.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, loadErr.Reason, "empty")
	})

	t.Run("required column missing", func(t *testing.T) {
		path := writeInput(t, "flights.csv", "date,airline\n2024-03-01,AA\n")
		_, _, err := repo.Load(ctx, path, schema)
		var loadErr *types.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("no parseable rows", func(t *testing.T) {
		path := writeInput(t, "flights.csv", "date,status\nbad,on_time\nworse,delayed\n")
		_, _, err := repo.Load(ctx, path, schema)
		var loadErr *types.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, loadErr.Reason, "no parseable rows")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		path := writeInput(t, "flights.csv", "date,status\n2024-03-01,on_time\n")
		_, _, err := repo.Load(cancelled, path, schema)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerateSampleIsDeterministic(t *testing.T) {
	repo := &RecordRepositoryImpl{}
	ref := time.Date(2024, 6, 30, 15, 4, 5, 0, time.UTC)

	a, reportA := repo.GenerateSample(45, 7, ref)
	b, reportB := repo.GenerateSample(45, 7, ref)
	assert.Equal(t, a.All(), b.All(), "same seed must reproduce the set")
	assert.Equal(t, reportA, reportB)

	c, _ := repo.GenerateSample(45, 8, ref)
	assert.NotEqual(t, a.All(), c.All(), "a different seed changes the set")
}

func TestGenerateSampleShape(t *testing.T) {
	repo := &RecordRepositoryImpl{}
	ref := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	days := 30

	set, report := repo.GenerateSample(days, 3, ref)

	require.False(t, set.IsEmpty())
	assert.Equal(t, set.Len(), report.RowsRead)
	assert.Equal(t, set.Len(), report.RowsKept)
	assert.Equal(t, "sample", report.Path)

	min, max, ok := set.Span()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), max, "ends at the reference day")
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), min, "covers exactly the requested days")

	dates := map[time.Time]bool{}
	validStatus := map[string]bool{
		entity.StatusOnTime:    true,
		entity.StatusDelayed:   true,
		entity.StatusCancelled: true,
		entity.StatusDiverted:  true,
	}
	validDelayType := map[string]bool{
		"carrier": true, "weather": true, "nas": true, "security": true, "late_aircraft": true,
	}

	for _, rec := range set.All() {
		dates[rec.Date] = true
		assert.True(t, validStatus[rec.Status], "unexpected status %q", rec.Status)
		assert.NotEmpty(t, rec.Category("airline"))
		assert.NotEmpty(t, rec.State)

		minutes, hasDelay := rec.Number("delay_minutes")
		if rec.Status == entity.StatusDelayed {
			require.True(t, hasDelay, "delayed flights carry delay minutes")
			assert.GreaterOrEqual(t, minutes, 15.0)
			assert.LessOrEqual(t, minutes, 75.0)
			assert.True(t, validDelayType[rec.Category("delay_type")],
				"unexpected delay type %q", rec.Category("delay_type"))
		} else {
			assert.False(t, hasDelay, "only delayed flights carry delay minutes")
			assert.Empty(t, rec.Category("delay_type"))
		}
	}
	assert.Len(t, dates, days, "every day in the range produces events")
}
