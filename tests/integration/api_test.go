package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio-matra/portfolio-backend/internal/bootstrap"
	"github.com/studio-matra/portfolio-backend/internal/importer"
	"github.com/studio-matra/portfolio-backend/internal/media"
	"github.com/studio-matra/portfolio-backend/internal/order"
	"github.com/studio-matra/portfolio-backend/internal/portfolio"
	"github.com/studio-matra/portfolio-backend/internal/records"
)

const adminSecret = "test-admin-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mc := media.NewClient(media.Config{})
	rec := records.NewStore(filepath.Join(t.TempDir(), "records.json"))
	svc := portfolio.NewService(rec, mc, importer.New(mc, nil), order.NewStore(mc))

	return bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-backend",
		Version:     "test",
		AdminSecret: adminSecret,
		Media:       mc,
		Service:     svc,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("X-Admin-Secret", adminSecret)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestLocationLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "Test City"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var loc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, "test-city", loc["id"])
	assert.Equal(t, "Test City", loc["name"])
	assert.Equal(t, "", loc["stateOrCountry"])

	// A second name slugifying to the same ID conflicts.
	w = doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "TEST city"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/locations/test-city", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/locations/test-city", gin.H{"stateOrCountry": "Nowhere"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/locations/test-city", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/locations/test-city", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsRequireAdminSecret(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "Test City"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reads stay open.
	w = doJSON(t, r, http.MethodGet, "/locations", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "Test City"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "Villa", "locationId": "test-city"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var proj map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &proj))
	assert.Equal(t, "Villa", proj["name"])
	assert.Equal(t, []any{}, proj["images"])
	projectID := proj["id"].(string)

	// Unknown location is a validation failure, not a 404.
	w = doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "Villa", "locationId": "nowhere"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Location does not exist")

	w = doJSON(t, r, http.MethodGet, "/projects?location=test-city", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = doJSON(t, r, http.MethodGet, "/locations/test-city/projects", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/projects/"+projectID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/projects/"+projectID, nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLocationCascades(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "Test City"}, true)
	doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "Villa", "locationId": "test-city"}, true)

	w := doJSON(t, r, http.MethodDelete, "/locations/test-city", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/projects", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestAdminVerify(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/admin/verify", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/admin/verify", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicOrderAlias(t *testing.T) {
	r := newTestRouter(t)

	// Media host unconfigured: the default empty document, not an error.
	w := doJSON(t, r, http.MethodGet, "/locations/order", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"locations": [], "projects": {}}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/admin/order", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"locations": [], "projects": {}}`, w.Body.String())
}

func TestCatalogView(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/locations", gin.H{"name": "Test City"}, true)
	doJSON(t, r, http.MethodPost, "/projects", gin.H{"name": "Villa", "locationId": "test-city"}, true)

	w := doJSON(t, r, http.MethodGet, "/catalog", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var view []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotEmpty(t, view)

	// The created location leads; fallback seed locations follow.
	assert.Equal(t, "test-city", view[0]["id"])
	projects := view[0]["projects"].([]any)
	require.Len(t, projects, 1)
	first := projects[0].(map[string]any)
	assert.Equal(t, "Villa", first["title"])
}
