package etl

import (
	"errors"
	"fmt"

	"github.com/BartekS5/uilm/pkg/models"
	"golang.org/x/text/language"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRecord checks that a record can be stored: identifying fields are
// present, it has at least one resource, every culture is a well-formed BCP 47
// tag used at most once, and every resource value is a scalar.
func (v *Validator) ValidateRecord(rec models.TranslationRecord) error {
	if rec.ID == "" {
		return errors.New("missing required ID field: _id")
	}
	if rec.TenantID == "" {
		return errors.New("missing required field: TenantId")
	}
	if rec.ModuleID == "" {
		return errors.New("missing required field: ModuleId")
	}
	if len(rec.Resources) == 0 {
		return fmt.Errorf("key %q has no resources", rec.KeyName)
	}

	seen := make(map[models.Culture]bool, len(rec.Resources))
	for _, res := range rec.Resources {
		if _, err := language.Parse(string(res.Culture)); err != nil || res.Culture == "" {
			return fmt.Errorf("key %q: invalid culture %q", rec.KeyName, res.Culture)
		}
		if seen[res.Culture] {
			return fmt.Errorf("key %q: duplicate culture %q", rec.KeyName, res.Culture)
		}
		seen[res.Culture] = true
		if !res.Value.IsScalar() {
			return fmt.Errorf("key %q: %s value for %s is not a scalar", rec.KeyName, res.Value.Kind(), res.Culture)
		}
	}
	return nil
}
