package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/service"
	"github.com/CodeVantage/codevantage-backend/internal/synopsis"
)

var testRecords = []domain.ProjectRecord{
	{ID: "p1", Title: "Chatbot", Domain: "AI", Language: "Python"},
	{ID: "p2", Title: "Portal", Domain: "Web", Language: "Java"},
	{ID: "p3", Title: "Sensor Hub", Domain: "IoT", Language: "Python"},
}

type redirectResolver struct{ url string }

func (r redirectResolver) Resolve(context.Context, domain.ProjectRecord) (synopsis.Download, error) {
	return synopsis.Download{RedirectURL: r.url}, nil
}

type brokenResolver struct{}

func (brokenResolver) Resolve(context.Context, domain.ProjectRecord) (synopsis.Download, error) {
	return synopsis.Download{}, errors.New("bucket gone")
}

func setupRouter(t *testing.T, resolver synopsis.Resolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := service.NewCatalogService(testRecords)
	require.NoError(t, err)

	h := New(svc, resolver, nil)
	r := gin.New()
	h.Register(r.Group("/api/v1/catalog"))
	h.RegisterPages(r)
	return r
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type listResponse struct {
	OK       bool                   `json:"ok"`
	Filters  domain.FilterState     `json:"filters"`
	Count    int                    `json:"count"`
	Projects []domain.ProjectRecord `json:"projects"`
	Empty    bool                   `json:"empty"`
	Message  string                 `json:"message"`
}

func TestList(t *testing.T) {
	r := setupRouter(t, nil)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
		filters domain.FilterState
	}{
		{"no params", "", []string{"p1", "p2", "p3"}, domain.FilterState{Domain: "All", Language: "All"}},
		{"domain only", "?domain=AI", []string{"p1"}, domain.FilterState{Domain: "AI", Language: "All"}},
		{"language only", "?language=Python", []string{"p1", "p3"}, domain.FilterState{Domain: "All", Language: "Python"}},
		{"both", "?domain=Web&language=Java", []string{"p2"}, domain.FilterState{Domain: "Web", Language: "Java"}},
		{"explicit wildcard", "?domain=All&language=All", []string{"p1", "p2", "p3"}, domain.FilterState{Domain: "All", Language: "All"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, "/api/v1/catalog/projects"+tt.query)
			require.Equal(t, http.StatusOK, rr.Code)

			var body listResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.True(t, body.OK)
			assert.Equal(t, tt.filters, body.Filters)
			assert.Equal(t, len(tt.wantIDs), body.Count)
			assert.False(t, body.Empty)

			var ids []string
			for _, p := range body.Projects {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestList_Empty(t *testing.T) {
	r := setupRouter(t, nil)

	rr := do(r, "/api/v1/catalog/projects?domain=IoT&language=Java")
	require.Equal(t, http.StatusOK, rr.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Empty)
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Projects)
	assert.Equal(t, domain.EmptyResultMessage, body.Message)
}

func TestGet(t *testing.T) {
	r := setupRouter(t, nil)

	rr := do(r, "/api/v1/catalog/projects/p2")
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		OK      bool                 `json:"ok"`
		Project domain.ProjectRecord `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Portal", body.Project.Title)

	rr = do(r, "/api/v1/catalog/projects/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFilters(t *testing.T) {
	r := setupRouter(t, nil)

	rr := do(r, "/api/v1/catalog/filters")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Options domain.FilterOptions `json:"options"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, domain.DefaultFilterOptions(), body.Options)
}

func TestSynopsis(t *testing.T) {
	t.Run("text attachment", func(t *testing.T) {
		r := setupRouter(t, nil)
		rr := do(r, "/api/v1/catalog/projects/p1/synopsis")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "p1-synopsis.txt")
		assert.Contains(t, rr.Body.String(), "Chatbot")
	})

	t.Run("redirect", func(t *testing.T) {
		r := setupRouter(t, redirectResolver{url: "https://example.test/p1.pdf"})
		rr := do(r, "/api/v1/catalog/projects/p1/synopsis")
		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Equal(t, "https://example.test/p1.pdf", rr.Header().Get("Location"))
	})

	t.Run("resolver failure", func(t *testing.T) {
		r := setupRouter(t, brokenResolver{})
		rr := do(r, "/api/v1/catalog/projects/p1/synopsis")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		r := setupRouter(t, nil)
		rr := do(r, "/api/v1/catalog/projects/zzz/synopsis")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCatalogPage(t *testing.T) {
	r := setupRouter(t, nil)

	t.Run("selectors keep the other field", func(t *testing.T) {
		rr := do(r, "/catalog?domain=AI&language=Python")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html"))

		html := rr.Body.String()
		assert.Contains(t, html, "Chatbot")
		assert.NotContains(t, html, "Sensor Hub")
		// switching domain keeps language=Python, switching language keeps domain=AI
		assert.Contains(t, html, `href="/catalog?domain=Web&amp;language=Python"`)
		assert.Contains(t, html, `href="/catalog?domain=AI&amp;language=Java"`)
		assert.Contains(t, html, `href="/catalog?domain=All&amp;language=Python"`)
	})

	t.Run("empty state", func(t *testing.T) {
		rr := do(r, "/catalog?domain=IoT&language=Java")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), domain.EmptyResultMessage)
	})
}

func TestBuildPageData(t *testing.T) {
	res := service.Result{State: domain.FilterState{Domain: "Web", Language: "All"}}
	data := buildPageData(domain.DefaultFilterOptions(), res, "/api/v1/catalog")

	require.Len(t, data.DomainLinks, 4)
	require.Len(t, data.LanguageLinks, 3)

	var active []string
	for _, l := range append(data.DomainLinks, data.LanguageLinks...) {
		if l.Active {
			active = append(active, l.Label)
		}
	}
	assert.Equal(t, []string{"Web", "All"}, active)
	assert.Equal(t, "/catalog?domain=IoT&language=All", data.DomainLinks[3].Href)
}

func TestSynopsisHref(t *testing.T) {
	tests := []struct {
		base, id, want string
	}{
		{"/api/v1/catalog", "ai-001", "/api/v1/catalog/projects/ai-001/synopsis"},
		{"/api/v1/catalog", "a?b#c", "/api/v1/catalog/projects/a%3Fb%23c/synopsis"},
		{"/api/v1/catalog", "x/y", "/api/v1/catalog/projects/x%2Fy/synopsis"},
		{"/v2/catalog/", "p1", "/v2/catalog/projects/p1/synopsis"},
		{"", "p1", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, synopsisHref(tt.base, tt.id), tt.id)
	}
}

func TestCatalogPage_SynopsisLinks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, err := service.NewCatalogService([]domain.ProjectRecord{
		{ID: "q?1#2", Title: "Odd Id", Domain: "AI", Language: "Python"},
	})
	require.NoError(t, err)

	t.Run("follows the mounted api group", func(t *testing.T) {
		h := New(svc, nil, nil)
		r := gin.New()
		h.RegisterPages(r)
		h.Register(r.Group("/v2/projects-catalog"))

		rr := do(r, "/catalog")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `href="/v2/projects-catalog/projects/q%3F1%232/synopsis"`)
	})

	t.Run("no api group", func(t *testing.T) {
		h := New(svc, nil, nil)
		r := gin.New()
		h.RegisterPages(r)

		rr := do(r, "/catalog")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Odd Id")
		assert.NotContains(t, rr.Body.String(), "Download synopsis")
	})
}
