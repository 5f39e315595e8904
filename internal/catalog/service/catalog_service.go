package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
	"github.com/CodeVantage/codevantage-backend/internal/catalog/repository"
)

// ResultCache stores filter results by catalog version. Implemented by cache.FilterCache.
type ResultCache interface {
	Get(ctx context.Context, version string, state domain.FilterState) ([]string, bool, error)
	Set(ctx context.Context, version string, state domain.FilterState, ids []string) error
}

// Result is one evaluation of the catalog filter, ready for display.
type Result struct {
	State    domain.FilterState     `json:"filters"`
	Projects []domain.ProjectRecord `json:"projects"`
	Empty    bool                   `json:"empty"`
	Message  string                 `json:"message,omitempty"`
}

// CatalogService serves filter queries over an immutable catalog snapshot.
// It is safe for concurrent use: nothing is written after construction.
type CatalogService struct {
	records []domain.ProjectRecord
	index   map[string]int
	options domain.FilterOptions
	version string
	cache   ResultCache
	log     *zap.Logger
}

type Option func(*CatalogService)

// WithCache enables result memoization. Cache failures are logged and ignored.
func WithCache(c ResultCache) Option {
	return func(s *CatalogService) { s.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *CatalogService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDerivedOptions offers selector values found in the data instead of the
// hand-maintained lists.
func WithDerivedOptions(derive bool) Option {
	return func(s *CatalogService) {
		if derive {
			s.options = domain.DeriveOptions(s.records)
		}
	}
}

// NewCatalogService validates records and takes a private copy of them.
func NewCatalogService(records []domain.ProjectRecord, opts ...Option) (*CatalogService, error) {
	if err := domain.Validate(records); err != nil {
		return nil, err
	}

	snapshot := make([]domain.ProjectRecord, len(records))
	copy(snapshot, records)

	index := make(map[string]int, len(snapshot))
	for i, r := range snapshot {
		index[r.ID] = i
	}

	version, err := snapshotVersion(snapshot)
	if err != nil {
		return nil, err
	}

	s := &CatalogService{
		records: snapshot,
		index:   index,
		options: domain.DefaultFilterOptions(),
		version: version,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromSource loads the collection once from src.
func NewFromSource(ctx context.Context, src repository.Source, opts ...Option) (*CatalogService, error) {
	records, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewCatalogService(records, opts...)
}

func snapshotVersion(records []domain.ProjectRecord) (string, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("hash catalog: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:12], nil
}

func (s *CatalogService) Size() int                     { return len(s.records) }
func (s *CatalogService) Version() string               { return s.version }
func (s *CatalogService) Options() domain.FilterOptions { return s.options }

// Records returns a copy of the full collection in catalog order.
func (s *CatalogService) Records() []domain.ProjectRecord {
	out := make([]domain.ProjectRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *CatalogService) Get(_ context.Context, id string) (domain.ProjectRecord, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.ProjectRecord{}, domain.ErrNotFound
	}
	return s.records[i], nil
}

// Filter evaluates state against the snapshot. It never fails: unknown
// selector values produce an empty result with the empty-state message.
func (s *CatalogService) Filter(ctx context.Context, state domain.FilterState) Result {
	state = state.Normalize()

	projects, ok := s.fromCache(ctx, state)
	if !ok {
		projects = domain.FilterCatalog(s.records, state)
		s.store(ctx, state, projects)
	}

	res := Result{State: state, Projects: projects}
	if len(projects) == 0 {
		res.Empty = true
		res.Message = domain.EmptyResultMessage
	}
	return res
}

func (s *CatalogService) fromCache(ctx context.Context, state domain.FilterState) ([]domain.ProjectRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	ids, hit, err := s.cache.Get(ctx, s.version, state)
	if err != nil {
		s.log.Warn("catalog cache read failed", zap.Error(err))
		return nil, false
	}
	if !hit {
		return nil, false
	}
	out := make([]domain.ProjectRecord, 0, len(ids))
	for _, id := range ids {
		i, ok := s.index[id]
		if !ok {
			s.log.Warn("catalog cache references unknown id", zap.String("id", id))
			return nil, false
		}
		out = append(out, s.records[i])
	}
	return out, true
}

func (s *CatalogService) store(ctx context.Context, state domain.FilterState, projects []domain.ProjectRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.version, state, recordIDs(projects)); err != nil {
		s.log.Warn("catalog cache write failed", zap.Error(err))
	}
}

// States lists every combination of the offered selector values.
func (s *CatalogService) States() []domain.FilterState { return s.options.States() }

// Warm precomputes every selector combination into the cache.
func (s *CatalogService) Warm(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	n := 0
	for _, state := range s.States() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		ids := recordIDs(domain.FilterCatalog(s.records, state))
		if err := s.cache.Set(ctx, s.version, state, ids); err != nil {
			return n, fmt.Errorf("warm %s/%s: %w", state.Domain, state.Language, err)
		}
		n++
	}
	return n, nil
}

func recordIDs(records []domain.ProjectRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
