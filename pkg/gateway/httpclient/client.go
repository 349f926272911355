package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"
)

// New returns a client for calls to the identity provider.
func New(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
		IdleConnTimeout:     60 * time.Second,
		TLSHandshakeTimeout: 3 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// Backoff describes how often and how patiently an operation is retried.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by the auditor when writing to Postgres.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond, Max: 2 * time.Second}

// Retry runs fn until it succeeds, the attempts run out or ctx is done.
// The last error from fn is returned.
func Retry(ctx context.Context, b Backoff, fn func(context.Context) error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	delay := b.Initial

	var err error
	for i := 0; i < b.Attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i == b.Attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}
