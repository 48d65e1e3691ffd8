package processor

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/BartekS5/uilm/pkg/flatten"
	"github.com/BartekS5/uilm/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() models.Configuration {
	return models.Configuration{
		ModuleID:              "mod-1",
		ModuleName:            "Common",
		TenantID:              "tenant-1",
		IsPartiallyTranslated: true,
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := baseConfig()
	cfg.EnglishJSON = `{"a":"b"}`

	result := Validate(cfg)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.NoError(t, result.Err())
}

func TestValidate_EmptyLanguagesAreExempt(t *testing.T) {
	cfg := baseConfig()
	cfg.FrenchJSON = "   "

	assert.True(t, Validate(cfg).Valid)
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := baseConfig()
	cfg.ModuleID = ""
	cfg.ItalianJSON = "{invalid"

	result := Validate(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Module ID is required", "Italian JSON is invalid"}, result.Errors)

	var verr *ValidationError
	require.True(t, errors.As(result.Err(), &verr))
	assert.Equal(t, "Module ID is required, Italian JSON is invalid", verr.Error())
}

func TestValidate_WhitespaceMetadataIsMissing(t *testing.T) {
	cfg := models.Configuration{
		ModuleID:    "  ",
		EnglishJSON: "[",
		GermanJSON:  "{",
	}

	assert.Equal(t, []string{
		"Module ID is required",
		"Module Name is required",
		"Tenant ID is required",
		"English JSON is invalid",
		"German JSON is invalid",
	}, Validate(cfg).Errors)
}

func TestProcess_UnionOfKeys(t *testing.T) {
	cfg := baseConfig()
	cfg.EnglishJSON = `{"a":"hello"}`
	cfg.FrenchJSON = `{"b":"bonjour"}`

	records, err := New(WithIDGenerator(sequentialIDs())).Process(cfg)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a", records[0].KeyName)
	assert.Equal(t, []models.Resource{{Value: flatten.StringValue("hello"), Culture: models.CultureEnglish}}, records[0].Resources)

	assert.Equal(t, "b", records[1].KeyName)
	assert.Equal(t, []models.Resource{{Value: flatten.StringValue("bonjour"), Culture: models.CultureFrench}}, records[1].Resources)

	assert.Equal(t, "id-1", records[0].ID)
	assert.Equal(t, "id-2", records[1].ID)
}

func TestProcess_SharedKeyMerge(t *testing.T) {
	cfg := baseConfig()
	cfg.FrenchJSON = `{"greeting":"Bonjour"}`
	cfg.EnglishJSON = `{"greeting":"Hello"}`

	records, err := Process(cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)

	res := records[0].Resources
	require.Len(t, res, 2)
	assert.Equal(t, models.CultureEnglish, res[0].Culture)
	assert.Equal(t, "Hello", res[0].Value.Text())
	assert.Equal(t, models.CultureFrench, res[1].Culture)
}

func TestProcess_CanonicalLanguageOrder(t *testing.T) {
	cfg := baseConfig()
	cfg.GermanJSON = `{"k":"de","only_de":"x"}`
	cfg.ItalianJSON = `{"k":"it"}`
	cfg.EnglishJSON = `{"k":"en"}`

	records, err := Process(cfg)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "k", records[0].KeyName)
	assert.Equal(t, []models.Culture{models.CultureEnglish, models.CultureItalian, models.CultureGerman}, records[0].Cultures())

	assert.Equal(t, "only_de", records[1].KeyName)
	assert.Equal(t, []models.Culture{models.CultureGerman}, records[1].Cultures())
}

func TestProcess_FirstSeenKeyOrder(t *testing.T) {
	cfg := baseConfig()
	cfg.EnglishJSON = `{"b":1,"a":{"x":2}}`
	cfg.FrenchJSON = `{"c":3,"b":4}`
	cfg.GermanJSON = `{"list":["p","q"]}`

	records, err := Process(cfg)
	require.NoError(t, err)

	var keys []string
	for _, r := range records {
		keys = append(keys, r.KeyName)
	}
	assert.Equal(t, []string{"b", "a.x", "c", "list[0]", "list[1]"}, keys)
}

func TestProcess_MetadataPropagation(t *testing.T) {
	cfg := baseConfig()
	cfg.IsPartiallyTranslated = false
	cfg.EnglishJSON = `{"a":1,"b":{"c":[true,null]}}`
	cfg.ItalianJSON = `{"z":"zz"}`

	records, err := Process(cfg)
	require.NoError(t, err)
	require.Len(t, records, 4)

	ids := map[string]bool{}
	for _, r := range records {
		assert.Equal(t, cfg.TenantID, r.TenantID)
		assert.Equal(t, cfg.ModuleID, r.ModuleID)
		assert.Equal(t, cfg.ModuleName, r.Module)
		assert.False(t, r.IsPartiallyTranslated)
		assert.Nil(t, r.Value)
		assert.NotNil(t, r.Routes)
		assert.Empty(t, r.Routes)
		assert.NotEmpty(t, r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, ids, 4, "ids must be unique")
}

func TestProcess_NoInputs(t *testing.T) {
	records, err := Process(baseConfig())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestProcess_InvalidInputReturnsParseError(t *testing.T) {
	cfg := baseConfig()
	cfg.GermanJSON = "{oops"

	_, err := Process(cfg)
	require.Error(t, err)

	var perr *flatten.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "German JSON")
}

func TestProcess_ConcurrentUse(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg := baseConfig()
			cfg.EnglishJSON = fmt.Sprintf(`{"k%d":"v"}`, i)
			records, err := p.Process(cfg)
			assert.NoError(t, err)
			if assert.Len(t, records, 1) {
				assert.Equal(t, fmt.Sprintf("k%d", i), records[0].KeyName)
			}
		}(i)
	}
	wg.Wait()
}

func TestSummarize(t *testing.T) {
	cfg := baseConfig()
	cfg.EnglishJSON = `{"a":"1","b":"2"}`
	cfg.GermanJSON = `{"a":"eins"}`

	records, err := Process(cfg)
	require.NoError(t, err)

	assert.Equal(t, Summary{Items: 2, Languages: 2}, Summarize(records))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestValidate_RejectsExcessiveNesting(t *testing.T) {
	depth := flatten.MaxDepth * 4
	cfg := baseConfig()
	cfg.EnglishJSON = `{"a":` + strings.Repeat("[", depth) + `"x"` + strings.Repeat("]", depth) + `}`

	result := Validate(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"English JSON is invalid"}, result.Errors)

	_, err := Process(cfg)
	assert.ErrorIs(t, err, flatten.ErrInvalidJSON)
}
