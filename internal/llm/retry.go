package llm

import (
	"context"
	"fmt"
	"time"
)

// RetryClient wraps a Client with a bounded retry budget per call.
// Transient generation failures are retried; a call that exhausts its
// budget returns the last error so the engine can demote the candidate.
type RetryClient struct {
	inner   Client
	retries int
	backoff time.Duration
}

// NewRetryClient wraps inner with up to retries additional attempts.
func NewRetryClient(inner Client, retries int, backoff time.Duration) *RetryClient {
	if retries < 0 {
		retries = 0
	}
	return &RetryClient{inner: inner, retries: retries, backoff: backoff}
}

// Name returns the underlying provider name.
func (c *RetryClient) Name() string {
	return c.inner.Name()
}

// Complete attempts the call up to 1+retries times.
func (c *RetryClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 && c.backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		resp, err := c.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Context cancellation is not transient.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("dialogue generation failed after %d attempts: %w", c.retries+1, lastErr)
}
