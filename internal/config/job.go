package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BartekS5/uilm/pkg/models"
)

// Job describes a scripted conversion: module metadata plus the language
// files to read. File paths are relative to the job file.
type Job struct {
	ModuleID              string            `json:"moduleId"`
	ModuleName            string            `json:"moduleName"`
	TenantID              string            `json:"tenantId"`
	IsPartiallyTranslated *bool             `json:"isPartiallyTranslated,omitempty"`
	Files                 map[string]string `json:"files"`
	Output                string            `json:"output,omitempty"`

	dir string
}

// LoadJob reads and parses a job file from the given path.
func LoadJob(filePath string) (*Job, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file '%s': %w", filePath, err)
	}

	var job Job
	if err := json.Unmarshal(bytes, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file '%s': %w", filePath, err)
	}

	var unknown []string
	for code := range job.Files {
		if _, ok := models.LanguageByCode(code); !ok {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("job file '%s': unsupported languages %v", filePath, unknown)
	}

	job.dir = filepath.Dir(filePath)
	return &job, nil
}

// Resolve returns p relative to the job file's directory.
func (j *Job) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(j.dir, p)
}

// Apply copies the job's metadata onto cfg and reads every listed language
// file into it.
func (j *Job) Apply(cfg *models.Configuration, maxBytes int64) error {
	if j.ModuleID != "" {
		cfg.ModuleID = j.ModuleID
	}
	if j.ModuleName != "" {
		cfg.ModuleName = j.ModuleName
	}
	if j.TenantID != "" {
		cfg.TenantID = j.TenantID
	}
	if j.IsPartiallyTranslated != nil {
		cfg.IsPartiallyTranslated = *j.IsPartiallyTranslated
	}

	for _, lang := range models.Languages {
		p, ok := j.Files[lang.Code]
		if !ok || p == "" {
			continue
		}
		content, err := ReadLanguageFile(j.Resolve(p), maxBytes)
		if err != nil {
			return fmt.Errorf("%s: %w", lang.Name, err)
		}
		cfg.SetInput(lang, content)
	}
	return nil
}
