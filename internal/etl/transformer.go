package etl

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/BartekS5/uilm/pkg/utils"
)

// MongoResource is the stored form of models.Resource.
type MongoResource struct {
	Value   interface{} `bson:"Value"`
	Culture string      `bson:"Culture"`
}

// MongoDocument is the stored form of models.TranslationRecord. The field
// names match the JSON output so both can feed the same importer.
type MongoDocument struct {
	ID                    string          `bson:"_id,omitempty"`
	TenantID              string          `bson:"TenantId"`
	KeyName               string          `bson:"KeyName"`
	ModuleID              string          `bson:"ModuleId"`
	Module                string          `bson:"Module"`
	Value                 interface{}     `bson:"Value"`
	Resources             []MongoResource `bson:"Resources"`
	Routes                []string        `bson:"Routes"`
	IsPartiallyTranslated bool            `bson:"IsPartiallyTranslated"`
}

// SQLRow is the stored form of a record in the SQL Server table. Resources
// and routes are kept as JSON text.
type SQLRow struct {
	ID                    string
	TenantID              string
	ModuleID              string
	ModuleName            string
	KeyName               string
	Value                 sql.NullString
	Resources             string
	Routes                string
	IsPartiallyTranslated bool
}

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

func (t *Transformer) ToMongo(rec models.TranslationRecord) (MongoDocument, error) {
	doc := MongoDocument{
		ID:                    rec.ID,
		TenantID:              rec.TenantID,
		KeyName:               rec.KeyName,
		ModuleID:              rec.ModuleID,
		Module:                rec.Module,
		Resources:             make([]MongoResource, 0, len(rec.Resources)),
		Routes:                rec.Routes,
		IsPartiallyTranslated: rec.IsPartiallyTranslated,
	}
	if doc.Routes == nil {
		doc.Routes = []string{}
	}

	if rec.Value != nil {
		v, err := utils.ConvertToMongoType(*rec.Value)
		if err != nil {
			return MongoDocument{}, fmt.Errorf("key %s: %w", rec.KeyName, err)
		}
		doc.Value = v
	}

	for _, res := range rec.Resources {
		v, err := utils.ConvertToMongoType(res.Value)
		if err != nil {
			return MongoDocument{}, fmt.Errorf("key %s (%s): %w", rec.KeyName, res.Culture, err)
		}
		doc.Resources = append(doc.Resources, MongoResource{Value: v, Culture: string(res.Culture)})
	}
	return doc, nil
}

func (t *Transformer) FromMongo(doc MongoDocument) (models.TranslationRecord, error) {
	rec := models.TranslationRecord{
		ID:                    doc.ID,
		TenantID:              doc.TenantID,
		KeyName:               doc.KeyName,
		ModuleID:              doc.ModuleID,
		Module:                doc.Module,
		Resources:             make([]models.Resource, 0, len(doc.Resources)),
		Routes:                doc.Routes,
		IsPartiallyTranslated: doc.IsPartiallyTranslated,
	}
	if rec.Routes == nil {
		rec.Routes = []string{}
	}

	if doc.Value != nil {
		v, err := utils.ConvertFromMongoType(doc.Value)
		if err != nil {
			return models.TranslationRecord{}, fmt.Errorf("key %s: %w", doc.KeyName, err)
		}
		rec.Value = &v
	}

	for _, res := range doc.Resources {
		v, err := utils.ConvertFromMongoType(res.Value)
		if err != nil {
			return models.TranslationRecord{}, fmt.Errorf("key %s (%s): %w", doc.KeyName, res.Culture, err)
		}
		rec.Resources = append(rec.Resources, models.Resource{Value: v, Culture: models.Culture(res.Culture)})
	}
	return rec, nil
}

func (t *Transformer) ToSQLRow(rec models.TranslationRecord) (SQLRow, error) {
	row := SQLRow{
		ID:                    rec.ID,
		TenantID:              rec.TenantID,
		ModuleID:              rec.ModuleID,
		ModuleName:            rec.Module,
		KeyName:               rec.KeyName,
		IsPartiallyTranslated: rec.IsPartiallyTranslated,
	}

	if rec.Value != nil {
		b, err := rec.Value.MarshalJSON()
		if err != nil {
			return SQLRow{}, fmt.Errorf("key %s: %w", rec.KeyName, err)
		}
		row.Value = sql.NullString{String: string(b), Valid: true}
	}

	resources := rec.Resources
	if resources == nil {
		resources = []models.Resource{}
	}
	b, err := json.Marshal(resources)
	if err != nil {
		return SQLRow{}, fmt.Errorf("key %s: encoding resources: %w", rec.KeyName, err)
	}
	row.Resources = string(b)

	routes := rec.Routes
	if routes == nil {
		routes = []string{}
	}
	if b, err = json.Marshal(routes); err != nil {
		return SQLRow{}, fmt.Errorf("key %s: encoding routes: %w", rec.KeyName, err)
	}
	row.Routes = string(b)

	return row, nil
}

func (t *Transformer) FromSQLRow(row SQLRow) (models.TranslationRecord, error) {
	rec := models.TranslationRecord{
		ID:                    row.ID,
		TenantID:              row.TenantID,
		KeyName:               row.KeyName,
		ModuleID:              row.ModuleID,
		Module:                row.ModuleName,
		Resources:             []models.Resource{},
		Routes:                []string{},
		IsPartiallyTranslated: row.IsPartiallyTranslated,
	}

	if row.Value.Valid {
		v, err := flatten.Parse(row.Value.String)
		if err != nil {
			return models.TranslationRecord{}, fmt.Errorf("key %s: %w", row.KeyName, err)
		}
		rec.Value = &v
	}
	if row.Resources != "" {
		if err := json.Unmarshal([]byte(row.Resources), &rec.Resources); err != nil {
			return models.TranslationRecord{}, fmt.Errorf("key %s: decoding resources: %w", row.KeyName, err)
		}
	}
	if row.Routes != "" {
		if err := json.Unmarshal([]byte(row.Routes), &rec.Routes); err != nil {
			return models.TranslationRecord{}, fmt.Errorf("key %s: decoding routes: %w", row.KeyName, err)
		}
	}
	return rec, nil
}
