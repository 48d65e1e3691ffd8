package models

import (
	"encoding/json"
	"strings"
)

// Configuration is the input of one conversion run: module metadata plus the
// raw JSON text of each language. An empty language string means the
// language is omitted.
type Configuration struct {
	ModuleID              string `json:"moduleId"`
	ModuleName            string `json:"moduleName"`
	TenantID              string `json:"tenantId"`
	EnglishJSON           string `json:"englishJson"`
	FrenchJSON            string `json:"frenchJson"`
	ItalianJSON           string `json:"italianJson"`
	GermanJSON            string `json:"germanJson"`
	IsPartiallyTranslated bool   `json:"isPartiallyTranslated"`
}

// Input returns the raw JSON supplied for lang.
func (c Configuration) Input(lang Language) string {
	switch lang.Culture {
	case CultureEnglish:
		return c.EnglishJSON
	case CultureFrench:
		return c.FrenchJSON
	case CultureItalian:
		return c.ItalianJSON
	case CultureGerman:
		return c.GermanJSON
	default:
		return ""
	}
}

// SetInput stores raw as the JSON for lang.
func (c *Configuration) SetInput(lang Language, raw string) {
	switch lang.Culture {
	case CultureEnglish:
		c.EnglishJSON = raw
	case CultureFrench:
		c.FrenchJSON = raw
	case CultureItalian:
		c.ItalianJSON = raw
	case CultureGerman:
		c.GermanJSON = raw
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every text field.
func (c Configuration) Trimmed() Configuration {
	out := c
	out.ModuleID = strings.TrimSpace(c.ModuleID)
	out.ModuleName = strings.TrimSpace(c.ModuleName)
	out.TenantID = strings.TrimSpace(c.TenantID)
	for _, lang := range Languages {
		out.SetInput(lang, strings.TrimSpace(c.Input(lang)))
	}
	return out
}

// UnmarshalJSON decodes a configuration. A missing isPartiallyTranslated
// defaults to true.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	type plain Configuration
	aux := struct {
		*plain
		IsPartiallyTranslated *bool `json:"isPartiallyTranslated"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.IsPartiallyTranslated = aux.IsPartiallyTranslated == nil || *aux.IsPartiallyTranslated
	return nil
}
