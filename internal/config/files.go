package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BartekS5/uilm/pkg/flatten"
)

var (
	ErrNotJSONFile     = errors.New("please select a JSON file")
	ErrFileTooLarge    = errors.New("file size too large")
	ErrInvalidJSONFile = errors.New("invalid JSON file format")
	utf8BOM            = []byte{0xEF, 0xBB, 0xBF}
)

// ReadLanguageFile reads one per-language translation document. The file must
// have a .json extension, be at most maxBytes long (DefaultMaxFileBytes when
// maxBytes <= 0) and contain valid JSON. The content is returned re-indented
// for display.
func ReadLanguageFile(filePath string, maxBytes int64) (string, error) {
	data, err := ReadJSONFile(filePath, maxBytes)
	if err != nil {
		return "", err
	}

	formatted, err := flatten.Format(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", filePath, ErrInvalidJSONFile)
	}
	return formatted, nil
}

// ReadJSONFile reads a .json file of at most maxBytes and strips a leading
// UTF-8 byte order mark. The content is not parsed.
func ReadJSONFile(filePath string, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}
	if !strings.EqualFold(filepath.Ext(filePath), ".json") {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNotJSONFile)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%s: %w (maximum %d bytes)", filePath, ErrFileTooLarge, maxBytes)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}
