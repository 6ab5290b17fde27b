package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"aide/internal/adapter/analyzer"
	"aide/internal/adapter/cache"
	"aide/internal/adapter/index"
	"aide/internal/adapter/retriever"
	"aide/internal/domain"
	"aide/internal/port"
)

// CatalogOptions configures the per-kind indices.
type CatalogOptions struct {
	Scaling index.TFScaling
	// CacheSize bounds the per-kind query cache; 0 disables caching.
	CacheSize int
	CacheTTL  time.Duration
}

type catalogEntry struct {
	index  *index.Index
	ranker cache.Ranker
	cache  *cache.QueryCache // nil when caching is off
}

// Catalog owns one name index per entity kind for the lifetime of a command.
// Each index is built from the store on first use and then maintained
// incrementally by Insert and Remove. Nothing is persisted.
type Catalog struct {
	source     port.NameSource
	tokenizer  *analyzer.Tokenizer
	vectorizer *index.Vectorizer
	opts       CatalogOptions
	logger     *zap.Logger
	entries    map[domain.EntityKind]*catalogEntry
}

func NewCatalog(source port.NameSource, opts CatalogOptions, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		source:     source,
		tokenizer:  analyzer.NewTokenizer(),
		vectorizer: index.NewVectorizer(opts.Scaling),
		opts:       opts,
		logger:     logger,
		entries:    make(map[domain.EntityKind]*catalogEntry),
	}
}

func (c *Catalog) entry(kind domain.EntityKind) (*catalogEntry, error) {
	if e, ok := c.entries[kind]; ok {
		return e, nil
	}

	names, err := c.source.ListNames(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s names: %w", kind, err)
	}

	start := time.Now()
	idx := index.Build(c.tokenizer, c.vectorizer, names)

	e := &catalogEntry{index: idx, ranker: retriever.NewMatcher(idx)}
	if c.opts.CacheSize > 0 {
		e.cache = cache.NewQueryCache(c.opts.CacheSize, c.opts.CacheTTL)
		e.ranker = cache.NewCachedRanker(e.ranker, e.cache)
	}
	c.entries[kind] = e

	c.logger.Debug("built name index",
		zap.Stringer("kind", kind),
		zap.Int("documents", idx.TotalDocuments()),
		zap.Int("terms", idx.Vocabulary().Len()),
		zap.Duration("took", time.Since(start)),
	)
	return e, nil
}

// Index returns the index of kind, building it on first use.
func (c *Catalog) Index(kind domain.EntityKind) (*index.Index, error) {
	e, err := c.entry(kind)
	if err != nil {
		return nil, err
	}
	return e.index, nil
}

// Ranker returns the matcher of kind, building its index on first use.
func (c *Catalog) Ranker(kind domain.EntityKind) (cache.Ranker, error) {
	e, err := c.entry(kind)
	if err != nil {
		return nil, err
	}
	return e.ranker, nil
}

// Insert adds a newly stored name to the index of kind. An index that has not
// been built yet will pick the name up from the store when it is.
func (c *Catalog) Insert(kind domain.EntityKind, name string) {
	e, ok := c.entries[kind]
	if !ok {
		return
	}
	if _, added := e.index.Insert(name); added {
		c.logger.Debug("indexed name", zap.Stringer("kind", kind), zap.String("name", name))
	}
}

// Remove drops a deleted name from the index of kind.
func (c *Catalog) Remove(kind domain.EntityKind, name string) {
	e, ok := c.entries[kind]
	if !ok {
		return
	}
	if e.index.Remove(name) {
		c.logger.Debug("unindexed name", zap.Stringer("kind", kind), zap.String("name", name))
	}
}

// Rebuild recomputes every cached vector of kind against the current
// vocabulary.
func (c *Catalog) Rebuild(kind domain.EntityKind) (domain.IndexStats, error) {
	e, err := c.entry(kind)
	if err != nil {
		return domain.IndexStats{}, err
	}
	e.index.Rebuild()
	c.logger.Debug("rebuilt name index", zap.Stringer("kind", kind), zap.Int("documents", e.index.TotalDocuments()))
	return e.stats(kind), nil
}

// Stats reports the size of the index of kind.
func (c *Catalog) Stats(kind domain.EntityKind) (domain.IndexStats, error) {
	e, err := c.entry(kind)
	if err != nil {
		return domain.IndexStats{}, err
	}
	return e.stats(kind), nil
}

// Suggest returns up to limit ranked candidates for raw. limit <= 0 returns
// every candidate.
func (c *Catalog) Suggest(kind domain.EntityKind, raw string, limit int) ([]domain.Candidate, error) {
	e, err := c.entry(kind)
	if err != nil {
		return nil, err
	}
	candidates := e.ranker.Query(raw)
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Reset drops every index and its cached queries so the next use rebuilds
// from the store.
func (c *Catalog) Reset() {
	for _, e := range c.entries {
		if e.cache != nil {
			e.cache.Invalidate()
		}
	}
	c.entries = make(map[domain.EntityKind]*catalogEntry)
}

func (e *catalogEntry) stats(kind domain.EntityKind) domain.IndexStats {
	s := domain.IndexStats{
		Kind:       kind,
		Documents:  e.index.TotalDocuments(),
		Terms:      e.index.Vocabulary().Len(),
		Generation: e.index.Generation(),
	}
	if e.cache != nil {
		s.CachedQueries = e.cache.Size()
	}
	return s
}
