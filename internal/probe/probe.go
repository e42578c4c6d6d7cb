// Package probe performs single timed HTTP checks against target URLs.
package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"sitewatch/internal/safenet"
)

// Result holds the outcome of one check. StatusCode 0 means no response
// was received (network error or timeout). ResponseTimeMs is measured up
// to the point the request resolved or was aborted.
type Result struct {
	Passed         bool
	StatusCode     int
	ResponseTimeMs int64
	Err            string
}

// Prober issues one GET per check with a hard timeout. It performs no
// retries; each tick is one attempt.
type Prober struct {
	Timeout      time.Duration
	AllowPrivate bool
}

func New(timeout time.Duration, allowPrivate bool) *Prober {
	return &Prober{Timeout: timeout, AllowPrivate: allowPrivate}
}

// Check probes url and always returns a Result: invalid URLs, network
// errors, timeouts and non-2xx/3xx statuses are failed checks, never
// errors propagated to the caller.
func (p *Prober) Check(ctx context.Context, url string) *Result {
	checkCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, url, nil)
	if err != nil {
		return &Result{Err: fmt.Sprintf("invalid request: %v", err)}
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: p.Timeout,
			Control: safenet.MaybeDialControl(p.AllowPrivate),
		}).DialContext,
		DisableKeepAlives: true,
	}
	client := &http.Client{
		Transport: transport,
		Timeout:   p.Timeout,
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return &Result{
			ResponseTimeMs: elapsed,
			Err:            fmt.Sprintf("request failed: %v", err),
		}
	}
	resp.Body.Close()

	result := &Result{
		StatusCode:     resp.StatusCode,
		ResponseTimeMs: elapsed,
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.Passed = true
	} else {
		result.Err = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return result
}
