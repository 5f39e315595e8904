package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

// PostgresSource reads the catalog from the catalog_projects table.
// The table is written only by `catalogctl seed`; the API treats it as read-only.
type PostgresSource struct {
	db *pgxpool.Pool
}

func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

const schema = `
create table if not exists catalog_projects (
  id          text primary key,
  position    integer not null unique,
  title       text not null,
  domain      text not null,
  language    text not null,
  description text not null default ''
);
`

// EnsureSchema creates the catalog table when missing.
func (r *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure catalog schema: %w", err)
	}
	return nil
}

func (r *PostgresSource) List(ctx context.Context) ([]domain.ProjectRecord, error) {
	const q = `
select id, title, domain, language, description
from catalog_projects
order by position asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ProjectRecord, 0, 32)
	for rows.Next() {
		var p domain.ProjectRecord
		if err := rows.Scan(&p.ID, &p.Title, &p.Domain, &p.Language, &p.Description); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	if err := domain.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed replaces the stored catalog with records, keeping their order.
func (r *PostgresSource) Seed(ctx context.Context, records []domain.ProjectRecord) (int, error) {
	if err := domain.Validate(records); err != nil {
		return 0, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `delete from catalog_projects;`); err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}

	const q = `
insert into catalog_projects (id, position, title, domain, language, description)
values ($1, $2, $3, $4, $5, $6);
`
	b := &pgx.Batch{}
	for i, p := range records {
		b.Queue(q, p.ID, i, p.Title, p.Domain, p.Language, p.Description)
	}
	br := tx.SendBatch(ctx, b)
	for i := range records {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return 0, fmt.Errorf("record %q: %w", records[i].ID, domain.ErrDuplicateID)
			}
			return 0, fmt.Errorf("insert record %q: %w", records[i].ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(records), nil
}
