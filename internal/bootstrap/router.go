package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/CodeVantage/codevantage-backend/internal/api/http"
	"github.com/CodeVantage/codevantage-backend/internal/api/http/middleware"
	cataloghttp "github.com/CodeVantage/codevantage-backend/internal/catalog/http"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/service"
	"github.com/CodeVantage/codevantage-backend/internal/synopsis"
	"github.com/CodeVantage/codevantage-backend/internal/timetable"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	// Catalog nil leaves the catalog routes unmounted.
	Catalog  *service.CatalogService
	Synopsis synopsis.Resolver
	// DB and Cache feed the health check; leave nil when disabled.
	DB    httpapi.Pinger
	Cache httpapi.Pinger
	Log   *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var stats httpapi.CatalogStats
	if dep.Catalog != nil {
		stats = dep.Catalog
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache, stats)
	healthHandler.RegisterRoutes(r)

	limit := middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst)

	api := r.Group("/api/v1")
	api.Use(limit)

	if dep.Catalog != nil {
		catalogHandler := cataloghttp.New(dep.Catalog, dep.Synopsis, dep.Log)

		pages := r.Group("")
		pages.Use(limit)
		catalogHandler.RegisterPages(pages)
		catalogHandler.Register(api.Group("/catalog"))
	}
	timetable.Register(api.Group("/timetable"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
