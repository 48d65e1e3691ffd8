package processor

import (
	"fmt"

	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/google/uuid"
)

// Processor turns a configuration into translation records. It holds no
// per-run state and is safe for concurrent use.
type Processor struct {
	newID func() string
}

type Option func(*Processor)

// WithIDGenerator replaces the random UUID generator used for record ids.
func WithIDGenerator(fn func() string) Option {
	return func(p *Processor) {
		if fn != nil {
			p.newID = fn
		}
	}
}

func New(opts ...Option) *Processor {
	p := &Processor{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultProcessor = New()

// Process runs the default processor.
func Process(cfg models.Configuration) ([]models.TranslationRecord, error) {
	return defaultProcessor.Process(cfg)
}

// Process flattens every language input and emits one record per distinct
// key. Keys appear in first-seen order, walking languages in canonical order,
// and each record's resources follow that same language order.
//
// Process does not validate; calling it on input that fails Validate returns
// the underlying *flatten.ParseError.
func (p *Processor) Process(cfg models.Configuration) ([]models.TranslationRecord, error) {
	maps := make([]*flatten.FlatMap, len(models.Languages))
	for i, lang := range models.Languages {
		m, err := flatten.Flatten(cfg.Input(lang))
		if err != nil {
			return nil, fmt.Errorf("%s JSON: %w", lang.Name, err)
		}
		maps[i] = m
	}

	keys := unionKeys(maps)
	records := make([]models.TranslationRecord, 0, len(keys))
	for _, key := range keys {
		resources := make([]models.Resource, 0, len(maps))
		for i, lang := range models.Languages {
			if v, ok := maps[i].Get(key); ok {
				resources = append(resources, models.Resource{Value: v, Culture: lang.Culture})
			}
		}

		records = append(records, models.TranslationRecord{
			ID:                    p.newID(),
			TenantID:              cfg.TenantID,
			KeyName:               key,
			ModuleID:              cfg.ModuleID,
			Module:                cfg.ModuleName,
			Value:                 nil,
			Resources:             resources,
			Routes:                []string{},
			IsPartiallyTranslated: cfg.IsPartiallyTranslated,
		})
	}
	return records, nil
}

func unionKeys(maps []*flatten.FlatMap) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, m := range maps {
		m.Range(func(path string, _ flatten.Value) bool {
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				keys = append(keys, path)
			}
			return true
		})
	}
	return keys
}

// Summary holds the counters shown after a run.
type Summary struct {
	Items     int `json:"items"`
	Languages int `json:"languages"`
}

// Summarize counts records and the distinct cultures they reference.
func Summarize(records []models.TranslationRecord) Summary {
	cultures := make(map[models.Culture]struct{})
	for _, rec := range records {
		for _, res := range rec.Resources {
			cultures[res.Culture] = struct{}{}
		}
	}
	return Summary{Items: len(records), Languages: len(cultures)}
}
