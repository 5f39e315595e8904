package http

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type selectorLink struct {
	Label  string
	Href   string
	Active bool
}

type projectCard struct {
	domain.ProjectRecord
	// SynopsisHref is empty when the JSON API is not mounted.
	SynopsisHref string
}

type pageData struct {
	State         domain.FilterState
	DomainLinks   []selectorLink
	LanguageLinks []selectorLink
	Result        service.Result
	Cards         []projectCard
}

// pageHref builds a link that carries both selector values explicitly.
func pageHref(state domain.FilterState) string {
	q := url.Values{}
	q.Set("domain", state.Domain)
	q.Set("language", state.Language)
	return "/catalog?" + q.Encode()
}

// synopsisHref links to the synopsis endpoint under apiBase with the id
// escaped as a single path segment.
func synopsisHref(apiBase, id string) string {
	if apiBase == "" {
		return ""
	}
	return strings.TrimSuffix(apiBase, "/") + "/projects/" + url.PathEscape(id) + "/synopsis"
}

func buildPageData(opts domain.FilterOptions, res service.Result, apiBase string) pageData {
	state := res.State
	data := pageData{State: state, Result: res}

	for _, p := range res.Projects {
		data.Cards = append(data.Cards, projectCard{
			ProjectRecord: p,
			SynopsisHref:  synopsisHref(apiBase, p.ID),
		})
	}

	for _, d := range opts.Domains {
		data.DomainLinks = append(data.DomainLinks, selectorLink{
			Label:  d,
			Href:   pageHref(state.WithDomain(d)),
			Active: d == state.Domain,
		})
	}
	for _, l := range opts.Languages {
		data.LanguageLinks = append(data.LanguageLinks, selectorLink{
			Label:  l,
			Href:   pageHref(state.WithLanguage(l)),
			Active: l == state.Language,
		})
	}
	return data
}

func (h *Handler) catalogPage(c *gin.Context) {
	res := h.catalog.Filter(c.Request.Context(), filterState(c))
	c.Render(http.StatusOK, render.HTML{
		Template: h.page,
		Name:     "catalog",
		Data:     buildPageData(h.catalog.Options(), res, h.apiBase),
	})
}
