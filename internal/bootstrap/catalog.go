package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeVantage/codevantage-backend/config"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/loader"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/repository"
)

// CatalogSource picks where the catalog is read from. db may be nil unless
// the source is postgres.
func CatalogSource(ctx context.Context, cfg config.CatalogConfig, db *pgxpool.Pool) (repository.Source, error) {
	switch cfg.Source {
	case config.SourceEmbedded, "":
		records, err := loader.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		return repository.NewStaticSource(records), nil

	case config.SourceFile:
		records, err := loader.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		return repository.NewStaticSource(records), nil

	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("catalog source postgres needs a database")
		}
		src := repository.NewPostgresSource(db)
		if err := src.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return src, nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
}
