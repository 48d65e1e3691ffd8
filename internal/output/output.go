// Package output writes generated translation records to files and streams.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BartekS5/uilm/internal/config"
	"github.com/BartekS5/uilm/pkg/models"
)

// Filename returns the download name for a run:
// translations_<moduleId>_<YYYY-MM-DD>.json, using "output" when moduleID is empty.
func Filename(moduleID string, now time.Time) string {
	if moduleID == "" {
		moduleID = "output"
	}
	return fmt.Sprintf("translations_%s_%s.json", moduleID, now.UTC().Format("2006-01-02"))
}

// WriteRecords writes records as a JSON array indented with two spaces.
func WriteRecords(w io.Writer, records []models.TranslationRecord) error {
	if records == nil {
		records = []models.TranslationRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records []models.TranslationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads records previously written by WriteFile.
func ReadFile(path string, maxBytes int64) ([]models.TranslationRecord, error) {
	data, err := config.ReadJSONFile(path, maxBytes)
	if err != nil {
		return nil, err
	}
	records, err := models.LoadRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records file '%s': %w", path, err)
	}
	return records, nil
}
