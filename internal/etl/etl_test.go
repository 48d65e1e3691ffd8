package etl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testRecord(key string) models.TranslationRecord {
	return models.TranslationRecord{
		ID:       "id-" + key,
		TenantID: "tenant-1",
		KeyName:  key,
		ModuleID: "mod-1",
		Module:   "Common",
		Resources: []models.Resource{
			{Value: flatten.StringValue("Hello"), Culture: models.CultureEnglish},
			{Value: flatten.NumberValue("42"), Culture: models.CultureFrench},
		},
		Routes:                []string{},
		IsPartiallyTranslated: true,
	}
}

func testRecords(n int) []models.TranslationRecord {
	out := make([]models.TranslationRecord, n)
	for i := range out {
		out[i] = testRecord(string(rune('a' + i)))
	}
	return out
}

type recordingLoader struct {
	batches [][]models.TranslationRecord
	failAt  int
}

func (l *recordingLoader) Load(_ context.Context, records []models.TranslationRecord) error {
	if l.failAt > 0 && len(l.batches)+1 == l.failAt {
		return errors.New("load failed")
	}
	l.batches = append(l.batches, records)
	return nil
}

func TestRecordExtractor_Batches(t *testing.T) {
	ext := &RecordExtractor{Records: testRecords(5)}

	batch, next, err := ext.Extract(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.Equal(t, 2, next)

	batch, next, err = ext.Extract(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Equal(t, 5, next)

	batch, _, err = ext.Extract(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestRecordExtractor_CheckpointOffsetIsString(t *testing.T) {
	ext := &RecordExtractor{Records: testRecords(3)}

	batch, next, err := ext.Extract(context.Background(), 10, "1")
	require.NoError(t, err)
	assert.Len(t, batch, 2)
	assert.Equal(t, 3, next)
}

func TestPipeline_LoadsAllBatches(t *testing.T) {
	loader := &recordingLoader{}
	p := NewEnhancedPipeline(&RecordExtractor{Records: testRecords(5)}, loader, 2, false)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Processed)
	assert.Equal(t, 3, stats.Batches)
	require.Len(t, loader.batches, 3)
	assert.Equal(t, "e", loader.batches[2][0].KeyName)
}

func TestPipeline_DefaultBatchSize(t *testing.T) {
	p := NewEnhancedPipeline(&RecordExtractor{}, &recordingLoader{}, 0, false)
	assert.Equal(t, defaultBatchSize, p.BatchSize)
}

func TestPipeline_DryRunSkipsLoader(t *testing.T) {
	loader := &recordingLoader{}
	p := NewEnhancedPipeline(&RecordExtractor{Records: testRecords(3)}, loader, 2, true)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Processed)
	assert.Empty(t, loader.batches)
}

func TestPipeline_CheckpointResume(t *testing.T) {
	checkpoint := filepath.Join(t.TempDir(), "checkpoint")
	records := testRecords(5)

	failing := &recordingLoader{failAt: 2}
	_, err := NewEnhancedPipeline(&RecordExtractor{Records: records}, failing, 2, false).
		WithCheckpoint(checkpoint).
		Run(context.Background())
	require.Error(t, err)

	saved, err := os.ReadFile(checkpoint)
	require.NoError(t, err)
	assert.Equal(t, "2", string(saved))

	loader := &recordingLoader{}
	stats, err := NewEnhancedPipeline(&RecordExtractor{Records: records}, loader, 2, false).
		WithCheckpoint(checkpoint).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, "c", loader.batches[0][0].KeyName)

	_, err = os.Stat(checkpoint)
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &recordingLoader{}
	_, err := NewEnhancedPipeline(&RecordExtractor{Records: testRecords(2)}, loader, 1, false).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, loader.batches)
}

func TestValidator_ValidateRecord(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.ValidateRecord(testRecord("a")))

	tests := []struct {
		name   string
		mutate func(*models.TranslationRecord)
		want   string
	}{
		{"missing id", func(r *models.TranslationRecord) { r.ID = "" }, "_id"},
		{"missing tenant", func(r *models.TranslationRecord) { r.TenantID = "" }, "TenantId"},
		{"missing module", func(r *models.TranslationRecord) { r.ModuleID = "" }, "ModuleId"},
		{"no resources", func(r *models.TranslationRecord) { r.Resources = nil }, "no resources"},
		{"bad culture", func(r *models.TranslationRecord) { r.Resources[0].Culture = "not a tag!" }, "invalid culture"},
		{"empty culture", func(r *models.TranslationRecord) { r.Resources[0].Culture = "" }, "invalid culture"},
		{"duplicate culture", func(r *models.TranslationRecord) { r.Resources[1].Culture = models.CultureEnglish }, "duplicate culture"},
		{"composite value", func(r *models.TranslationRecord) { r.Resources[0].Value = flatten.ArrayValue() }, "not a scalar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord("a")
			tt.mutate(&rec)
			err := v.ValidateRecord(rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTransformer_MongoRoundTrip(t *testing.T) {
	tr := NewTransformer()
	rec := testRecord("greeting")

	doc, err := tr.ToMongo(rec)
	require.NoError(t, err)
	assert.Equal(t, "id-greeting", doc.ID)
	assert.Nil(t, doc.Value)
	require.Len(t, doc.Resources, 2)
	assert.Equal(t, "Hello", doc.Resources[0].Value)
	assert.Equal(t, int64(42), doc.Resources[1].Value)
	assert.Equal(t, "fr-FR", doc.Resources[1].Culture)

	back, err := tr.FromMongo(doc)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestTransformer_MongoKeepsExactNumbers(t *testing.T) {
	tr := NewTransformer()
	rec := testRecord("amount")
	rec.Resources = []models.Resource{
		{Value: flatten.NumberValue("12345678901234567890"), Culture: models.CultureEnglish},
		{Value: flatten.NumberValue("1.10"), Culture: models.CultureFrench},
		{Value: flatten.NumberValue("0.5"), Culture: models.CultureItalian},
	}

	doc, err := tr.ToMongo(rec)
	require.NoError(t, err)
	assert.IsType(t, primitive.Decimal128{}, doc.Resources[0].Value)
	assert.IsType(t, primitive.Decimal128{}, doc.Resources[1].Value)
	assert.Equal(t, 0.5, doc.Resources[2].Value)

	back, err := tr.FromMongo(doc)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestTransformer_ToMongoRejectsComposite(t *testing.T) {
	rec := testRecord("a")
	rec.Resources[0].Value = flatten.ObjectValue()

	_, err := NewTransformer().ToMongo(rec)
	assert.Error(t, err)
}

func TestTransformer_SQLRoundTrip(t *testing.T) {
	tr := NewTransformer()
	rec := testRecord("a.b[0]")
	rec.Routes = []string{"/home"}

	row, err := tr.ToSQLRow(rec)
	require.NoError(t, err)
	assert.False(t, row.Value.Valid)
	assert.Equal(t, "Common", row.ModuleName)
	assert.JSONEq(t, `[{"Value":"Hello","Culture":"en-US"},{"Value":42,"Culture":"fr-FR"}]`, row.Resources)
	assert.Equal(t, `["/home"]`, row.Routes)

	back, err := tr.FromSQLRow(row)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestTransformer_FromSQLRowBadJSON(t *testing.T) {
	_, err := NewTransformer().FromSQLRow(SQLRow{KeyName: "a", Resources: "{"})
	assert.Error(t, err)
}

func TestNewSQLLoader_RejectsUnsafeTableNames(t *testing.T) {
	for _, table := range []string{"", "1abc", "users; DROP TABLE x", "a.b.c", "[dbo].[t]"} {
		_, err := NewSQLLoader(nil, table)
		assert.ErrorIs(t, err, ErrInvalidTableName, table)
	}

	for _, table := range []string{"uilm_resource_keys", "dbo.UilmResourceKeys"} {
		_, err := NewSQLLoader(nil, table)
		assert.NoError(t, err, table)
	}

	_, err := NewSQLExtractor(nil, "bad name", "", "")
	assert.ErrorIs(t, err, ErrInvalidTableName)
}

func TestRecordCollector(t *testing.T) {
	records := testRecords(5)
	collector := &RecordCollector{}

	stats, err := NewEnhancedPipeline(&RecordExtractor{Records: records}, collector, 2, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Batches)
	assert.Equal(t, records, collector.Records)
}
