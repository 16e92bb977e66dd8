package editorservice

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/stateful/webnb/internal/storage"
	"github.com/stateful/webnb/pkg/document/editor"
)

const (
	defaultCacheTTL     = 5 * time.Minute
	defaultMaxBodyBytes = 4 << 20
)

type Options struct {
	Logger       *zap.Logger
	CacheTTL     time.Duration
	MaxBodyBytes int64

	// Store and Matcher enable the read-only notebook endpoints.
	Store   storage.Provider
	Matcher *storage.Matcher
}

// Service decodes and encodes notebooks on behalf of an editor host.
type Service struct {
	logger       *zap.Logger
	cache        *cache.Cache
	maxBodyBytes int64
	store        storage.Provider
	matcher      *storage.Matcher
}

func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &Service{
		logger:       opts.Logger,
		cache:        cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		maxBodyBytes: opts.MaxBodyBytes,
		store:        opts.Store,
		matcher:      opts.Matcher,
	}
}

// Deserialize decodes source. Results are cached by content, so the
// returned notebook is shared and must not be modified.
func (s *Service) Deserialize(_ context.Context, source []byte) (*editor.Notebook, error) {
	key := storage.Checksum(source)

	if x, found := s.cache.Get(key); found {
		s.logger.Debug("deserialize cache hit", zap.String("checksum", key))
		return x.(*editor.Notebook), nil
	}

	notebook, err := editor.Deserialize(source, editor.Options{Logger: s.logger})
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, notebook, cache.DefaultExpiration)
	return notebook, nil
}

// Serialize encodes notebook, giving code cells fresh ids first when
// assignIDs is set.
func (s *Service) Serialize(_ context.Context, notebook *editor.Notebook, assignIDs bool) []byte {
	if assignIDs {
		if n := notebook.AssignIDs(); n > 0 {
			s.logger.Debug("assigned cell ids", zap.Int("count", n))
		}
	}
	return editor.Serialize(notebook, editor.Options{Logger: s.logger})
}

// CachedItems returns the number of decoded notebooks held in the cache.
func (s *Service) CachedItems() int {
	return s.cache.ItemCount()
}
