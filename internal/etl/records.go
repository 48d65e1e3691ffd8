package etl

import (
	"context"

	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/utils"
)

// RecordExtractor serves batches from records already held in memory, such
// as the output of a conversion or a records file.
type RecordExtractor struct {
	Records []models.TranslationRecord
}

func (r *RecordExtractor) Extract(_ context.Context, batchSize int, offset interface{}) ([]models.TranslationRecord, interface{}, error) {
	start := utils.GetIntOffset(offset)
	if start < 0 {
		start = 0
	}
	if start >= len(r.Records) {
		return nil, start, nil
	}

	end := start + batchSize
	if end > len(r.Records) {
		end = len(r.Records)
	}
	return r.Records[start:end], end, nil
}

// RecordCollector is a Loader that keeps every record it receives, in order.
type RecordCollector struct {
	Records []models.TranslationRecord
}

func (c *RecordCollector) Load(_ context.Context, records []models.TranslationRecord) error {
	c.Records = append(c.Records, records...)
	return nil
}
