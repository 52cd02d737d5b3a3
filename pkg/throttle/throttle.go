// Package throttle provides an adaptive rate limiter for outbound API calls.
// The rate rises on success and drops when the remote side reports overload.
// It never repeats a call; callers decide what to do with a failure.
//
// Example usage:
//
//	lim := throttle.New(5, 1, 20, 1, 0.5)
//	if err := lim.Wait(ctx); err != nil {
//	    return err
//	}
//	lim.Observe(doSomeWork())
package throttle

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cooldown is how long after the last overload signal the rate stays put.
const cooldown = 10 * time.Second

// Limiter manages a rate limit that adjusts automatically based on the
// outcome of requests. Safe for concurrent use.
type Limiter struct {
	mu        sync.RWMutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
	now       func() time.Time
}

// New creates a Limiter.
//
// Parameters:
//   - initial: starting requests per second
//   - min: minimum allowed rate
//   - max: maximum allowed rate
//   - stepUp: increment on success
//   - stepDown: multiplier applied on overload (e.g. 0.5 to halve)
func New(initial, min, max, stepUp rate.Limit, stepDown float64) *Limiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	if max < initial {
		max = initial
	}
	return &Limiter{
		limiter:  rate.NewLimiter(initial, max2(1, int(initial))),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
		now:      time.Now,
	}
}

// Wait blocks until a token is available or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.limiter.Wait(ctx)
}

// Observe feeds the outcome of a call back into the limiter.
func (l *Limiter) Observe(err error) {
	switch {
	case err == nil:
		l.Success()
	case IsOverload(err):
		l.RateLimited()
	}
}

// Success increases the rate after a successful request.
func (l *Limiter) Success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.now().Sub(l.lastError) > cooldown {
		l.adjust(l.limiter.Limit() + l.stepUp)
	}
}

// RateLimited reduces the rate after the server signalled overload.
func (l *Limiter) RateLimited() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = l.now()
	l.adjust(rate.Limit(float64(l.limiter.Limit()) * l.stepDown))
}

// CurrentLimit returns the current requests per second.
func (l *Limiter) CurrentLimit() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return float64(l.limiter.Limit())
}

// CurrentBurst returns the current burst size.
func (l *Limiter) CurrentBurst() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.limiter.Burst()
}

func (l *Limiter) adjust(limit rate.Limit) {
	if limit > l.maxLimit {
		limit = l.maxLimit
	} else if limit < l.minLimit {
		limit = l.minLimit
	}
	if limit != l.limiter.Limit() {
		l.limiter.SetLimit(limit)
		l.limiter.SetBurst(max2(1, int(limit)))
	}
}

// HTTPError is implemented by errors that carry an HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// IsOverload reports whether err carries a 429 or 5xx status.
func IsOverload(err error) bool {
	var herr HTTPError
	if !errors.As(err, &herr) {
		return false
	}
	code := herr.StatusCode()
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
