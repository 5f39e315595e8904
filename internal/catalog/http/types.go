package http

import (
	"context"
	"html/template"

	"go.uber.org/zap"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/service"
	"github.com/CodeVantage/codevantage-backend/internal/synopsis"
)

// Catalog is the read side the handlers need; *service.CatalogService satisfies it.
type Catalog interface {
	Filter(ctx context.Context, state domain.FilterState) service.Result
	Get(ctx context.Context, id string) (domain.ProjectRecord, error)
	Options() domain.FilterOptions
}

// Handler bundles the dependencies for catalog HTTP endpoints.
type Handler struct {
	catalog  Catalog
	synopsis synopsis.Resolver
	page     *template.Template
	log      *zap.Logger
	// apiBase is the group the JSON API was registered on; page links point into it.
	apiBase string
}

func New(catalog Catalog, resolver synopsis.Resolver, log *zap.Logger) *Handler {
	if resolver == nil {
		resolver = synopsis.NewTextResolver()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		catalog:  catalog,
		synopsis: resolver,
		page:     pageTemplate,
		log:      log,
	}
}
