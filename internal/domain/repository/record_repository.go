package repository

import (
	"context"
	"time"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
)

// RecordRepository defines the interface for obtaining record sets.
type RecordRepository interface {
	// Load reads tabular records from a local file, validating them against
	// the schema. The input is read exactly once and never modified.
	Load(ctx context.Context, path string, schema entity.Schema) (entity.RecordSet, entity.LoadReport, error)

	// GenerateSample produces a deterministic synthetic flight record set
	// covering the given number of days ending at the reference date.
	GenerateSample(days int, seed int64, reference time.Time) (entity.RecordSet, entity.LoadReport)
}
