package models

import (
	"encoding/json"

	"github.com/BartekS5/uilm/pkg/flatten"
)

// Culture is a language-region tag attached to a translated value.
type Culture string

const (
	CultureEnglish Culture = "en-US"
	CultureFrench  Culture = "fr-FR"
	CultureItalian Culture = "it-IT"
	CultureGerman  Culture = "de-DE"
)

// Language describes one of the supported input languages.
type Language struct {
	Name    string  // display name used in messages, e.g. "English"
	Code    string  // short code used for flags and job files, e.g. "en"
	Culture Culture // tag written to the output resources
}

// Languages lists the supported languages in canonical order. Resources are
// always emitted in this order.
var Languages = [...]Language{
	{Name: "English", Code: "en", Culture: CultureEnglish},
	{Name: "French", Code: "fr", Culture: CultureFrench},
	{Name: "Italian", Code: "it", Culture: CultureItalian},
	{Name: "German", Code: "de", Culture: CultureGerman},
}

// LanguageByCode looks up a language by its short code.
func LanguageByCode(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Resource is one per-language value of a translation key.
type Resource struct {
	Value   flatten.Value `json:"Value"`
	Culture Culture       `json:"Culture"`
}

// TranslationRecord is one merged-by-key output unit ready for import.
// Field names follow the resource store's import format.
type TranslationRecord struct {
	ID                    string         `json:"_id"`
	TenantID              string         `json:"TenantId"`
	KeyName               string         `json:"KeyName"`
	ModuleID              string         `json:"ModuleId"`
	Module                string         `json:"Module"`
	Value                 *flatten.Value `json:"Value"`
	Resources             []Resource     `json:"Resources"`
	Routes                []string       `json:"Routes"`
	IsPartiallyTranslated bool           `json:"IsPartiallyTranslated"`
}

// Cultures returns the cultures present in the record's resources.
func (r TranslationRecord) Cultures() []Culture {
	out := make([]Culture, 0, len(r.Resources))
	for _, res := range r.Resources {
		out = append(out, res.Culture)
	}
	return out
}

// LoadRecords parses a JSON array of translation records.
func LoadRecords(data []byte) ([]TranslationRecord, error) {
	var records []TranslationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Routes == nil {
			records[i].Routes = []string{}
		}
	}
	return records, nil
}
