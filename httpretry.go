package main

import (
	"fmt"
	"net/http"
	"time"
)

// httpRetrier retries transient failures (connection errors, HTTP 429/5xx)
// with a progressively increasing delay, capped at the configured maximum.
// Exhausting attempts surfaces as an error the caller maps to a network
// failure; it is never a fatal abort on its own.
type httpRetrier struct {
	client *http.Client
	cfg    RetryConfig
	sleep  func(time.Duration)
}

func newHTTPRetrier(cfg RetryConfig) *httpRetrier {
	return &httpRetrier{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Do builds and issues the request up to MaxAttempts times. The builder is
// called per attempt so request bodies are fresh. On success the caller owns
// the response body.
func (r *httpRetrier) Do(build func() (*http.Request, error)) (*http.Response, error) {
	delay := time.Duration(r.cfg.InitialDelaySeconds) * time.Second
	maxDelay := time.Duration(r.cfg.MaxDelaySeconds) * time.Second

	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			r.sleep(delay)
			delay = time.Duration(float64(delay) * r.cfg.BackoffMultiplier)
			if delay > maxDelay {
				delay = maxDelay
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			Logf("warn", "Request attempt %d/%d failed: %v", attempt, r.cfg.MaxAttempts, err)
			continue
		}

		if isTransientStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient HTTP status %d", resp.StatusCode)
			Logf("warn", "Request attempt %d/%d got status %d, retrying", attempt, r.cfg.MaxAttempts, resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", r.cfg.MaxAttempts, lastErr)
}
