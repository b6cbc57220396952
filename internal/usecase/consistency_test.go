package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/internal/shortcode"
)

type memStore struct {
	mu    sync.Mutex
	urls  map[string]entity.URL
	reads int
}

func newMemStore() *memStore {
	return &memStore{urls: make(map[string]entity.URL)}
}

func (s *memStore) Save(_ context.Context, shortCode, originalURL string) (*entity.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[shortCode]; ok {
		return nil, entity.ErrShortCodeExists
	}

	url := entity.URL{ShortCode: shortCode, OriginalURL: originalURL}
	s.urls[shortCode] = url

	return &url, nil
}

func (s *memStore) RetrieveByShortCode(_ context.Context, shortCode string) (*entity.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, entity.ErrURLNotFound
	}

	return &url, nil
}

func (s *memStore) Exists(_ context.Context, shortCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.urls[shortCode]
	return ok, nil
}

func (s *memStore) Update(_ context.Context, shortCode, originalURL string) (*entity.URL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, entity.ErrURLNotFound
	}

	url.OriginalURL = originalURL
	s.urls[shortCode] = url

	return &url, nil
}

func (s *memStore) Remove(_ context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[shortCode]; !ok {
		return entity.ErrURLNotFound
	}

	delete(s.urls, shortCode)
	return nil
}

func (s *memStore) storeReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reads
}

type memCache struct {
	mu   sync.Mutex
	urls map[string]string
}

func newMemCache() *memCache {
	return &memCache{urls: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, shortCode string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	url, ok := c.urls[shortCode]
	return url, ok, nil
}

func (c *memCache) Set(_ context.Context, shortCode, originalURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.urls[shortCode] = originalURL
	return nil
}

func (c *memCache) Delete(_ context.Context, shortCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.urls, shortCode)
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordAccess(shortCode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[shortCode]++

	return true
}

func newTestUseCase() (*URLUseCase, *memStore, *memCache, *countingRecorder) {
	store := newMemStore()
	cache := newMemCache()
	rec := &countingRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uc := NewURLUseCase(store, cache, shortcode.New(store), rec, logger)

	return uc, store, cache, rec
}

func TestURLUseCase_ReadYourWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("create then resolve", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		for i := 0; i < 50; i++ {
			url, err := uc.ShortenURL(ctx, "https://example.com")
			require.NoError(t, err)

			got, err := uc.ResolveShortCode(ctx, url.ShortCode)
			require.NoError(t, err)
			assert.Equal(t, "https://example.com", got)
		}
	})

	t.Run("update then resolve", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		url, err := uc.ShortenURL(ctx, "https://example.com")
		require.NoError(t, err)

		_, err = uc.ResolveShortCode(ctx, url.ShortCode)
		require.NoError(t, err)

		_, err = uc.ModifyURL(ctx, url.ShortCode, "https://example.org")
		require.NoError(t, err)

		got, err := uc.ResolveShortCode(ctx, url.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, "https://example.org", got)
	})

	t.Run("delete then resolve", func(t *testing.T) {
		uc, _, cache, _ := newTestUseCase()

		url, err := uc.ShortenURL(ctx, "https://example.com")
		require.NoError(t, err)

		_, err = uc.ResolveShortCode(ctx, url.ShortCode)
		require.NoError(t, err)

		require.NoError(t, uc.DeactivateURL(ctx, url.ShortCode))

		_, err = uc.ResolveShortCode(ctx, url.ShortCode)
		assert.ErrorIs(t, err, entity.ErrURLNotFound)

		_, found, _ := cache.Get(ctx, url.ShortCode)
		assert.False(t, found)
	})

	t.Run("miss is not cached", func(t *testing.T) {
		uc, _, cache, _ := newTestUseCase()

		_, err := uc.ResolveShortCode(ctx, "abc123")
		assert.ErrorIs(t, err, entity.ErrURLNotFound)

		_, found, _ := cache.Get(ctx, "abc123")
		assert.False(t, found)
	})
}

func TestURLUseCase_CacheHitSkipsStore(t *testing.T) {
	ctx := context.Background()
	uc, store, _, rec := newTestUseCase()

	url, err := uc.ShortenURL(ctx, "https://example.com")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := uc.ResolveShortCode(ctx, url.ShortCode)
		require.NoError(t, err)
	}

	assert.Zero(t, store.storeReads())
	assert.Equal(t, 10, rec.counts[url.ShortCode])
}

func TestURLUseCase_ColdCacheReadsStoreOnce(t *testing.T) {
	ctx := context.Background()
	uc, store, cache, _ := newTestUseCase()

	url, err := uc.ShortenURL(ctx, "https://example.com")
	require.NoError(t, err)
	require.NoError(t, cache.Delete(ctx, url.ShortCode))

	for i := 0; i < 5; i++ {
		got, err := uc.ResolveShortCode(ctx, url.ShortCode)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	}

	assert.Equal(t, 1, store.storeReads())
}

func TestURLUseCase_ShortCodesAreDistinct(t *testing.T) {
	const n = 1000

	ctx := context.Background()
	uc, _, _, _ := newTestUseCase()
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		url, err := uc.ShortenURL(ctx, "https://example.com")
		require.NoError(t, err)
		require.Len(t, url.ShortCode, shortcode.DefaultLength)

		_, dup := seen[url.ShortCode]
		require.False(t, dup, "duplicate short code %q", url.ShortCode)
		seen[url.ShortCode] = struct{}{}
	}

	assert.Len(t, seen, n)
}

// racingStore reports every candidate but the last of each generation as taken
// and loses every insert to a concurrent writer.
type racingStore struct {
	*memStore
	maxAttempts int
	checks      int
	saves       int
}

func (s *racingStore) Exists(_ context.Context, _ string) (bool, error) {
	s.checks++
	return s.checks%s.maxAttempts != 0, nil
}

func (s *racingStore) Save(_ context.Context, _, _ string) (*entity.URL, error) {
	s.saves++
	return nil, entity.ErrShortCodeExists
}

func TestURLUseCase_ShortenURLAttemptBound(t *testing.T) {
	const maxAttempts = 3

	store := &racingStore{memStore: newMemStore(), maxAttempts: maxAttempts}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := shortcode.New(store, shortcode.WithMaxAttempts(maxAttempts))
	uc := NewURLUseCase(store, newMemCache(), gen, &countingRecorder{}, logger)

	url, err := uc.ShortenURL(context.Background(), "https://example.com")

	assert.ErrorIs(t, err, entity.ErrCodeSpaceExhausted)
	assert.Nil(t, url)
	assert.Equal(t, maxAttempts, store.saves)
	assert.Equal(t, maxAttempts*maxAttempts, store.checks)
}
