// Package ratelimit throttles calls to a text extractor with a token bucket,
// so that batch scans stay within the limits of a remote document service.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit. Zero or less disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimiter is a token bucket shared by every scan worker.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter from cfg.
func NewRateLimiter(cfg Config) *RateLimiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a call may proceed or ctx ends.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor wraps a TextExtractor with a RateLimiter.
type Extractor struct {
	next    driven.TextExtractor
	limiter *RateLimiter
}

// Wrap throttles next according to cfg.
func Wrap(next driven.TextExtractor, cfg Config) *Extractor {
	return &Extractor{next: next, limiter: NewRateLimiter(cfg)}
}

// ExtractText waits for a token, then delegates.
func (e *Extractor) ExtractText(ctx context.Context, doc domain.Document) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return e.next.ExtractText(ctx, doc)
}

// Close closes the wrapped extractor.
func (e *Extractor) Close() error {
	return e.next.Close()
}
