// Package usecase implements the resolution service: creation, lookup,
// modification and removal of short code mappings under a cache-aside
// discipline.
//
// The durable store is the source of truth. The cache holds the short code ->
// URL projection only and is written after the store, so it may serve a stale
// URL between a store write and the following cache write. Cache failures
// never fail an operation; the next read repopulates the entry.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vadimbarashkov/shortlink/internal/entity"
)

type urlRepository interface {
	Save(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	Update(ctx context.Context, shortCode, originalURL string) (*entity.URL, error)
	Remove(ctx context.Context, shortCode string) error
}

type urlCache interface {
	Get(ctx context.Context, shortCode string) (string, bool, error)
	Set(ctx context.Context, shortCode, originalURL string) error
	Delete(ctx context.Context, shortCode string) error
}

type codeGenerator interface {
	Generate(ctx context.Context) (string, error)
	MaxAttempts() int
}

type statsRecorder interface {
	RecordAccess(shortCode string) bool
}

type URLUseCase struct {
	urlRepo  urlRepository
	urlCache urlCache
	codeGen  codeGenerator
	stats    statsRecorder
	logger   *slog.Logger
}

func NewURLUseCase(
	urlRepo urlRepository,
	urlCache urlCache,
	codeGen codeGenerator,
	stats statsRecorder,
	logger *slog.Logger,
) *URLUseCase {
	return &URLUseCase{
		urlRepo:  urlRepo,
		urlCache: urlCache,
		codeGen:  codeGen,
		stats:    stats,
		logger:   logger,
	}
}

// ShortenURL stores originalURL under a freshly generated short code.
// A code taken by a concurrent create between generation and insert is
// regenerated. At most MaxAttempts inserts are tried, and each regeneration
// makes at most MaxAttempts existence checks, so no more than MaxAttempts²
// candidates are drawn before ErrCodeSpaceExhausted.
func (uc *URLUseCase) ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	attempts := uc.codeGen.MaxAttempts()

	for i := 0; i < attempts; i++ {
		shortCode, err := uc.codeGen.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		uc.cacheURL(ctx, op, url.ShortCode, url.OriginalURL)

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, entity.ErrCodeSpaceExhausted)
}

// ResolveShortCode returns the URL the short code points to and schedules an
// access count increment. The increment is applied asynchronously.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (string, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	originalURL, err := uc.lookup(ctx, shortCode)
	if err != nil {
		return "", fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	uc.stats.RecordAccess(shortCode)

	return originalURL, nil
}

// lookup is the two-tier read: cache first, store on a miss or a cache error.
// A store hit repopulates the cache; a store miss is not cached so a mapping
// created right after is resolvable immediately.
func (uc *URLUseCase) lookup(ctx context.Context, shortCode string) (string, error) {
	const op = "usecase.URLUseCase.lookup"

	originalURL, found, err := uc.urlCache.Get(ctx, shortCode)
	if err != nil {
		uc.logger.Warn("cache lookup failed, falling back to store",
			slog.Group(op, slog.String("short_code", shortCode), slog.Any("err", err)),
		)
	}
	if err == nil && found {
		return originalURL, nil
	}

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	uc.cacheURL(ctx, op, url.ShortCode, url.OriginalURL)

	return url.OriginalURL, nil
}

// GetURL returns the mapping straight from the store.
func (uc *URLUseCase) GetURL(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURL"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	return url, nil
}

// GetURLStats returns the mapping with its access count. The counter is never
// cached, so this always reads the store.
func (uc *URLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLStats"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// ModifyURL points the short code at originalURL and overwrites the cached
// entry instead of invalidating it, so the code stays resolvable throughout.
func (uc *URLUseCase) ModifyURL(ctx context.Context, shortCode, originalURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ModifyURL"

	url, err := uc.urlRepo.Update(ctx, shortCode, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify url: %w", op, err)
	}

	uc.cacheURL(ctx, op, url.ShortCode, url.OriginalURL)

	return url, nil
}

// DeactivateURL removes the mapping from the store and then from the cache.
// If the cache delete fails the entry is served until its TTL expires.
func (uc *URLUseCase) DeactivateURL(ctx context.Context, shortCode string) error {
	const op = "usecase.URLUseCase.DeactivateURL"

	if err := uc.urlRepo.Remove(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to deactivate url: %w", op, err)
	}

	if err := uc.urlCache.Delete(ctx, shortCode); err != nil {
		uc.logger.Error("failed to evict url from cache",
			slog.Group(op, slog.String("short_code", shortCode), slog.Any("err", err)),
		)
	}

	return nil
}

func (uc *URLUseCase) cacheURL(ctx context.Context, op, shortCode, originalURL string) {
	if err := uc.urlCache.Set(ctx, shortCode, originalURL); err != nil {
		uc.logger.Error("failed to cache url",
			slog.Group(op, slog.String("short_code", shortCode), slog.Any("err", err)),
		)
	}
}
