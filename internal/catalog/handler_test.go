package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

func newTestRouter(src Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewCache(src, NewNormalizer("", ""), nil)).RegisterRoutes(r.Group("/cards"))
	return r
}

func TestHandlerList(t *testing.T) {
	src := &stubSource{cards: []models.CatalogCard{
		{ID: "base1-4", Name: "Charizard"},
		{ID: "base1-58", Name: "Pikachu"},
		{ID: "sv3pt5-6", Name: "Charmeleon"},
	}}
	r := newTestRouter(src)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards?q=char&limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int                     `json:"total"`
		Limit int                     `json:"limit"`
		Items []models.NormalizedCard `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	require.Equal(t, 1, body.Limit)
	require.Len(t, body.Items, 1)
	require.Equal(t, "Charizard", body.Items[0].Name)
}

func TestHandlerGetByID(t *testing.T) {
	r := newTestRouter(&stubSource{cards: []models.CatalogCard{{ID: "base1-4", Name: "Charizard"}}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/base1-4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/none", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerCatalogDown(t *testing.T) {
	src := &stubSource{}
	src.fail.Store(true)
	r := newTestRouter(src)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "cards.json")
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"data": []}`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"data": 1}`), 0o644))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/data/cards.json", ServeFile(good))
	r.GET("/data/broken.json", ServeFile(bad))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/cards.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"data": []}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/broken.json", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
