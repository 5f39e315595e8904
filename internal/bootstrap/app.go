package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/CodeVantage/codevantage-backend/config"
	httpapi "github.com/CodeVantage/codevantage-backend/internal/api/http"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/cache"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/service"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/warmup"
	"github.com/CodeVantage/codevantage-backend/internal/synopsis"
)

const (
	ServiceName     = "codevantage-api"
	shutdownTimeout = 10 * time.Second
)

// App holds everything the API process owns between start and shutdown.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *pgxpool.Pool
	redis     *redis.Client
	catalog   *service.CatalogService
	scheduler *warmup.Scheduler
	handler   http.Handler
}

// NewApp opens the optional backing stores, loads the catalog and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	if cfg.Database.DSN != "" {
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, err
		}
		a.db = pool
		log.Info("database connected")
	}

	var opts []service.Option
	var cachePinger httpapi.Pinger
	if cfg.CacheEnabled() {
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// The catalog works without the cache; run degraded.
			log.Warn("redis unavailable, filter cache disabled", zap.Error(err))
		} else {
			a.redis = client
			fc := cache.NewFilterCache(client, cfg.Redis.TTL)
			opts = append(opts, service.WithCache(fc))
			cachePinger = fc
		}
	}
	opts = append(opts,
		service.WithLogger(log),
		service.WithDerivedOptions(cfg.Catalog.DeriveOptions),
	)

	src, err := CatalogSource(ctx, cfg.Catalog, a.db)
	if err != nil {
		a.Close()
		return nil, err
	}
	svc, err := service.NewFromSource(ctx, src, opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = svc
	log.Info("catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("projects", svc.Size()),
		zap.String("version", svc.Version()),
	)

	resolver, err := synopsisResolver(ctx, cfg.Synopsis)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := RouterDeps{
		ServiceName:    ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Catalog:        svc,
		Synopsis:       resolver,
		Cache:          cachePinger,
		Log:            log,
	}
	if a.db != nil {
		deps.DB = a.db
	}
	a.handler = BuildRouter(deps)

	if a.redis != nil {
		a.scheduler = warmup.NewScheduler(svc, log)
	}
	return a, nil
}

func synopsisResolver(ctx context.Context, cfg config.SynopsisConfig) (synopsis.Resolver, error) {
	if cfg.Bucket == "" {
		return synopsis.NewTextResolver(), nil
	}
	r, err := synopsis.NewS3Resolver(ctx, cfg.Bucket, cfg.Region, cfg.URLTTL)
	if err != nil {
		return nil, fmt.Errorf("synopsis resolver: %w", err)
	}
	return r, nil
}

func (a *App) Handler() http.Handler { return a.handler }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(a.cfg.Catalog.WarmSchedule); err != nil {
			return err
		}
		defer a.scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Server.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
