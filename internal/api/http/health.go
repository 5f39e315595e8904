package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

// Pinger is anything the health check can probe: pgxpool.Pool, cache.FilterCache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CatalogStats reports on the loaded catalog snapshot.
type CatalogStats interface {
	Size() int
	Version() string
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Service   string       `json:"service"`
	Version   string       `json:"version"`
	DB        string       `json:"db,omitempty"`
	Cache     string       `json:"cache,omitempty"`
	Catalog   *CatalogInfo `json:"catalog,omitempty"`
}

type CatalogInfo struct {
	Projects int    `json:"projects"`
	Version  string `json:"version"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	cache       Pinger
	catalog     CatalogStats
}

// NewHealthHandler builds the handler; nil dependencies are reported as disabled.
func NewHealthHandler(serviceName, version string, db, cache Pinger, catalog CatalogStats) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		cache:       cache,
		catalog:     catalog,
	}
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return statusDisabled
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		return statusDown
	}
	return statusUp
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        probe(c.Request.Context(), h.db),
		Cache:     probe(c.Request.Context(), h.cache),
	}
	if h.catalog != nil {
		resp.Catalog = &CatalogInfo{Projects: h.catalog.Size(), Version: h.catalog.Version()}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
