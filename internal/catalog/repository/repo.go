package repository

import (
	"context"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

// Source supplies the catalog collection once at startup.
type Source interface {
	List(ctx context.Context) ([]domain.ProjectRecord, error)
}

// StaticSource serves a collection that is already in memory,
// e.g. the catalog bundled with the binary.
type StaticSource struct {
	records []domain.ProjectRecord
}

func NewStaticSource(records []domain.ProjectRecord) *StaticSource {
	return &StaticSource{records: append([]domain.ProjectRecord(nil), records...)}
}

func (s *StaticSource) List(ctx context.Context) ([]domain.ProjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.ProjectRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
