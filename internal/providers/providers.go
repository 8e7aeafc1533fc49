package providers

import (
	"context"

	"course-catalog/internal/domain"
)

// RecordSource produces canonical raw course records.
type RecordSource interface {
	Name() string
	ListRecords(ctx context.Context) ([]domain.RawRecord, error)
}
