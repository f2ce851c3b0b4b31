package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saanj-studio/anthology-core/internal/config"
)

const bulkResponse = `{
  "data": {
    "siteConfig": {"siteName": "Saanj Studio"},
    "posts": [
      {"slug": "post-a", "title": "Post A", "excerpt": "First", "publishDate": "2024-01-01T00:00:00Z",
       "category": {"name": "Essays", "slug": "essays"}, "isFeatured": true,
       "content": {"text": "some words"}},
      {"slug": "post-b", "title": "Post B", "excerpt": "Second", "publishDate": "2024-02-01T00:00:00Z",
       "category": {"name": "Poetry", "slug": "poetry"}, "isFeatured": false,
       "content": {"text": "other words"}}
    ],
    "categories": [
      {"name": "Essays", "slug": "essays"},
      {"name": "Poetry", "slug": "poetry"}
    ],
    "postsConnection": {"aggregate": {"count": 2}}
  }
}`

func newTestApp(t *testing.T) *App {
	t.Helper()

	cms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if strings.Contains(body.Query, "query PostBySlug") {
			w.Write([]byte(`{"data":{"post":null}}`))
			return
		}
		w.Write([]byte(bulkResponse))
	}))
	t.Cleanup(cms.Close)

	cfg := &config.AppConfig{
		Port:       2323,
		Env:        "production",
		SiteURL:    "https://saanj.studio",
		PurgeToken: "secret",
		Content: config.ContentConfig{
			Endpoint:     cms.URL,
			SiteConfigID: "site-1",
		},
		ShareCard: config.ShareCardConfig{
			Width: 214, Height: 350, PixelRatio: 1, Background: "#f3e8ff",
		},
	}

	application, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)
	return application
}

func get(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := get(t, newTestApp(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListPostsEndpoint(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/v1/posts")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data       []struct {
			Slug string `json:"slug"`
		} `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Pagination.Total)
	// Default order is newest first.
	assert.Equal(t, "post-b", body.Data[0].Slug)
}

func TestPostBySlugEndpoint(t *testing.T) {
	a := newTestApp(t)

	rec := get(t, a, "/api/v1/posts/post-a")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Post A"`)

	rec = get(t, a, "/api/v1/posts/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/v1/search?q=first")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Matched int    `json:"matched"`
		Total   int    `json:"total"`
		Label   string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Matched)
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "1 result found", body.Label)
}

func TestShareCardEndpoint(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/v1/posts/post-a/share-card.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "post-a-share-card.png")
}

func TestCachePurgeRequiresToken(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cache/purge", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cache/purge", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	rec := get(t, newTestApp(t), "/api/v1/bogus")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":0`)
}
