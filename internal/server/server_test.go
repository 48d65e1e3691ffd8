package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BartekS5/uilm/internal/state"
	"github.com/BartekS5/uilm/pkg/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	n := 0
	if opts.Processor == nil {
		opts.Processor = processor.New(processor.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}))
	}
	if opts.RateLimitRPS == 0 {
		opts.RateLimitRPS = 1000
		opts.RateLimitBurst = 1000
	}
	return New(state.NewFileStore(t.TempDir()), opts).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

func TestGenerate(t *testing.T) {
	body := `{
		"moduleId": " mod-1 ",
		"moduleName": "Common",
		"tenantId": "tenant-1",
		"englishJson": "{\"greeting\":\"Hello\",\"list\":[1]}",
		"frenchJson": "{\"greeting\":\"Bonjour\"}"
	}`

	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/api/v1/generate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.JSONEq(t, `{
		"data": [
			{"_id":"id-1","TenantId":"tenant-1","KeyName":"greeting","ModuleId":"mod-1","Module":"Common","Value":null,
			 "Resources":[{"Value":"Hello","Culture":"en-US"},{"Value":"Bonjour","Culture":"fr-FR"}],
			 "Routes":[],"IsPartiallyTranslated":true},
			{"_id":"id-2","TenantId":"tenant-1","KeyName":"list[0]","ModuleId":"mod-1","Module":"Common","Value":null,
			 "Resources":[{"Value":1,"Culture":"en-US"}],
			 "Routes":[],"IsPartiallyTranslated":true}
		],
		"meta": {"items":2,"languages":2}
	}`, rec.Body.String())
}

func TestGenerate_ValidationFailure(t *testing.T) {
	body := `{"moduleName":"Common","tenantId":"t","englishJson":"{bad"}`

	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/api/v1/generate", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "Module ID is required, English JSON is invalid", resp.Error.Message)
	assert.Equal(t, []string{"Module ID is required", "English JSON is invalid"}, resp.Error.Details)
}

func TestValidate(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/api/v1/validate", `{"germanJson":"["}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"valid":false,"errors":[
		"Module ID is required","Module Name is required","Tenant ID is required","German JSON is invalid"]}}`,
		rec.Body.String())
}

func TestMalformedBody(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodPost, "/api/v1/validate", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBodyTooLarge(t *testing.T) {
	h := newTestServer(t, Options{MaxFileBytes: 16})
	big := `{"englishJson":"` + strings.Repeat("x", 70*1024) + `"}`

	rec := do(t, h, http.MethodPost, "/api/v1/validate", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestFormat(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(t, h, http.MethodPost, "/api/v1/format", `{"json":"{\"b\":1,\"a\":[true]}"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data FormatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [true]\n}", resp.Data.JSON)

	rec = do(t, h, http.MethodPost, "/api/v1/format", `{"json":"{nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStateLifecycle(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := do(t, h, http.MethodGet, "/api/v1/state", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/state", `{"moduleId":"m","englishJson":"{}"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"moduleId":"m","moduleName":"","tenantId":"","englishJson":"{}",
		"frenchJson":"","italianJson":"","germanJson":"","isPartiallyTranslated":true}}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/v1/state", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/state", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	rec := do(t, h, http.MethodPost, "/api/v1/validate", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/validate", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Health checks are not limited.
	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t, Options{}), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
