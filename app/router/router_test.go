package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merch-intake/app/controller"
	"merch-intake/models"
	"merch-intake/repository"
	"merch-intake/service"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	requests := service.NewRequestService(repository.NewMemoryRequestRepository(), nil, nil)
	catalog, err := service.NewCatalogService("")
	require.NoError(t, err)
	summary, err := service.NewSummaryService(requests, catalog, "http://localhost:8080", "")
	require.NoError(t, err)

	return NewHandler(&Controllers{
		Request: controller.NewRequestController(requests, summary),
		Catalog: controller.NewCatalogController(catalog),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"zipCode": "94110",
	"products": [{"id": "tee", "name": "T-Shirt", "quantity": 120}],
	"files": [{"id": "f1", "name": "front.png", "type": "image/png", "size": 100}],
	"contactName": "Sam Rivera",
	"contactEmail": "sam@example.com"
}`

func TestPing(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateGetAndAddFiles(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/requests", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.MerchRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Nil(t, raw["deadline"], "absent optionals encode as null")
	assert.Contains(t, raw, "deadline")

	rec = do(t, h, http.MethodGet, "/api/requests/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/requests/"+created.ID+"/files",
		`[{"id": "f2", "name": "back.png", "type": "image/png", "size": 200}]`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.MerchRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Files, 2)
	assert.Equal(t, "f1", updated.Files[0].ID)
	assert.Equal(t, "f2", updated.Files[1].ID)
}

func TestCreateRequest_Invalid(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/requests", `{"zipCode": ""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request data", resp.Error)
	assert.NotEmpty(t, resp.Details)

	rec = do(t, h, http.MethodPost, "/api/requests", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/requests", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetRequest_NotFound(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/api/requests/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Request not found"}`, rec.Body.String())
}

func TestAddFiles_Errors(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/requests/missing/files",
		`[{"id": "f2", "name": "back.png", "type": "image/png", "size": 200}]`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/requests", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.MerchRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodPost, "/api/requests/"+created.ID+"/files", `{"id": "f2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid files data")

	rec = do(t, h, http.MethodPost, "/api/requests/"+created.ID+"/files", `[{"id": "", "name": "x", "type": "image/png", "size": 1}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "[0].id")
}

func TestSummaryAndCatalog(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/requests", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.MerchRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodGet, "/api/requests/"+created.ID+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Sam Rivera")

	rec = do(t, h, http.MethodGet, "/api/requests/"+created.ID+"/summary?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/requests/"+created.ID+"/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog models.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Equal(t, 50, catalog.MinimumOrderQuantity)
	assert.Len(t, catalog.Products, 5)
}

func TestWithRecovery(t *testing.T) {
	h := WithRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", bytes.NewReader(nil)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
