package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/uilm/pkg/logger"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bulkWriteTimeout = 30 * time.Second

type MongoLoader struct {
	Client      *mongo.Client
	Database    string
	Collection  string
	Transformer *Transformer
	Validator   *Validator
}

func NewMongoLoader(client *mongo.Client, database, collection string) *MongoLoader {
	return &MongoLoader{
		Client:      client,
		Database:    database,
		Collection:  collection,
		Transformer: NewTransformer(),
		Validator:   NewValidator(),
	}
}

// Load upserts records keyed on (TenantId, ModuleId, KeyName). An existing
// key keeps its _id so re-importing a module updates it in place.
func (m *MongoLoader) Load(ctx context.Context, records []models.TranslationRecord) error {
	coll := m.Client.Database(m.Database).Collection(m.Collection)
	var writes []mongo.WriteModel

	for _, rec := range records {
		if err := m.Validator.ValidateRecord(rec); err != nil {
			logger.Errorf("Skipping record %q: %v", rec.KeyName, err)
			continue
		}

		doc, err := m.Transformer.ToMongo(rec)
		if err != nil {
			logger.Errorf("Skipping record due to transform error: %v", err)
			continue
		}

		filter := bson.M{"TenantId": doc.TenantID, "ModuleId": doc.ModuleID, "KeyName": doc.KeyName}
		update := bson.M{
			"$set": bson.M{
				"TenantId":              doc.TenantID,
				"KeyName":               doc.KeyName,
				"ModuleId":              doc.ModuleID,
				"Module":                doc.Module,
				"Value":                 doc.Value,
				"Resources":             doc.Resources,
				"Routes":                doc.Routes,
				"IsPartiallyTranslated": doc.IsPartiallyTranslated,
			},
			"$setOnInsert": bson.M{"_id": doc.ID},
		}
		model := mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true)
		writes = append(writes, model)
	}

	if len(writes) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, bulkWriteTimeout)
	defer cancel()
	res, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("mongo bulk write: %w", err)
	}
	logger.Infof("Mongo BulkWrite: Match %d, Mod %d, Upsert %d", res.MatchedCount, res.ModifiedCount, res.UpsertedCount)
	return nil
}

// MongoExtractor pages through stored records of one tenant, optionally
// narrowed to a single module.
type MongoExtractor struct {
	Client      *mongo.Client
	Database    string
	Collection  string
	TenantID    string
	ModuleID    string
	Transformer *Transformer
}

func NewMongoExtractor(client *mongo.Client, database, collection, tenantID, moduleID string) *MongoExtractor {
	return &MongoExtractor{
		Client:      client,
		Database:    database,
		Collection:  collection,
		TenantID:    tenantID,
		ModuleID:    moduleID,
		Transformer: NewTransformer(),
	}
}

func (m *MongoExtractor) filter() bson.M {
	f := bson.M{}
	if m.TenantID != "" {
		f["TenantId"] = m.TenantID
	}
	if m.ModuleID != "" {
		f["ModuleId"] = m.ModuleID
	}
	return f
}

func (m *MongoExtractor) Extract(ctx context.Context, batchSize int, offset interface{}) ([]models.TranslationRecord, interface{}, error) {
	coll := m.Client.Database(m.Database).Collection(m.Collection)

	skip := utils.GetIntOffset(offset)
	findOpts := options.Find().
		SetLimit(int64(batchSize)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "ModuleId", Value: 1}, {Key: "KeyName", Value: 1}})

	cursor, err := coll.Find(ctx, m.filter(), findOpts)
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close(ctx)

	var results []models.TranslationRecord
	read := 0
	for cursor.Next(ctx) {
		read++
		var doc MongoDocument
		if err := cursor.Decode(&doc); err != nil {
			logger.Errorf("Error decoding mongo doc: %v", err)
			continue
		}
		rec, err := m.Transformer.FromMongo(doc)
		if err != nil {
			logger.Errorf("Skipping stored record: %v", err)
			continue
		}
		results = append(results, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, nil, err
	}

	return results, skip + read, nil
}
