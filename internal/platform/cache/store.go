package cache

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	defaultSize = 1024
	loadTimeout = 30 * time.Second
)

// Store is a bounded TTL cache with per-key load deduplication.
type Store struct {
	lru    *expirable.LRU[string, any]
	flight singleflight.Group
}

func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = defaultSize
	}
	return &Store{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	return s.lru.Get(key)
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.lru.Add(key, value)
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.lru.Remove(key)
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	for _, key := range s.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.lru.Remove(key)
		}
	}
}

func (s *Store) Len() int {
	return s.lru.Len()
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	// The shared load outlives any single caller; each caller stops waiting
	// when its own context ends.
	results := s.flight.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(loadCtx, key, loaded)
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	}
}
