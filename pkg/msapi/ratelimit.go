package msapi

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/msauth"
	"golang.org/x/time/rate"
)

// maxLimiters caps the per-caller table. When it fills up the table is
// dropped and callers start again with a full bucket.
const maxLimiters = 10000

type rateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxLimiters {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Middleware rejects requests over the caller's budget with 429.
func (l *rateLimiter) Middleware(api huma.API, key func(huma.Context) string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !l.allow(key(ctx)) {
			ctx.SetHeader("Retry-After", "1")
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(ctx)
	}
}

type principals interface {
	Principal(ctx context.Context) (*msauth.UserClaims, bool)
}

// callerKey buckets authenticated requests by user and the rest by client
// address.
func callerKey(p principals) func(huma.Context) string {
	return func(ctx huma.Context) string {
		if claims, ok := p.Principal(ctx.Context()); ok {
			return "user:" + claims.ID
		}
		host, _, err := net.SplitHostPort(ctx.RemoteAddr())
		if err != nil {
			host = ctx.RemoteAddr()
		}
		return "addr:" + host
	}
}
