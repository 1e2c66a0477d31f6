package backend

import (
	"context"
	"net/http"
	"time"

	"agriteranga-courier/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingDoer behaviour.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingDoer retries transient failures of idempotent requests with
// bounded exponential backoff. Mutating requests (accept, status update,
// complete) pass through with a single attempt: their callers surface the
// failure to the courier instead.
type RetryingDoer struct {
	next    Doer
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingDoer wraps next with retry behaviour. Returns nil when next is nil.
func NewRetryingDoer(next Doer, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingDoer {
	if next == nil {
		return nil
	}
	return &RetryingDoer{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Do executes the request, retrying GETs on retryable outcomes.
func (d *RetryingDoer) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return d.next.Do(req)
	}

	var lastResp *http.Response
	var lastErr error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		resp, err := d.next.Do(req)
		if err == nil && !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}
		lastResp, lastErr = resp, err

		ctx := req.Context()
		if ctx.Err() != nil || attempt == d.cfg.MaxAttempts {
			break
		}
		// a retryable status still carries a body we will not read
		if resp != nil {
			_ = resp.Body.Close()
			lastResp = nil
		}

		delay := backoff(d.cfg.BaseDelay, d.cfg.MaxDelay, attempt)
		if d.retries != nil {
			d.retries.Inc()
		}
		d.logger.Warn("backend gateway retry",
			logx.String("method", req.Method),
			logx.String("path", req.URL.Path),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			lastErr = ctx.Err()
			break
		}
	}
	if lastResp != nil {
		return lastResp, nil
	}
	return nil, lastErr
}

// isRetryableStatus reports whether the backend's answer is worth retrying.
func isRetryableStatus(status int) bool {
	switch {
	case status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

// backoff computes the retry delay for the given attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
