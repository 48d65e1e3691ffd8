package etl

import (
	"context"

	"github.com/BartekS5/uilm/pkg/models"
)

// Extractor returns the next batch of records starting at offset, together
// with the offset of the batch after it. An empty batch ends the run.
type Extractor interface {
	Extract(ctx context.Context, batchSize int, offset interface{}) ([]models.TranslationRecord, interface{}, error)
}

type Loader interface {
	Load(ctx context.Context, records []models.TranslationRecord) error
}
