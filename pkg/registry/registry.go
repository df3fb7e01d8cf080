// Package registry answers one question: is a given crate version already
// published? Three interchangeable checker implementations cover the
// registry's read surfaces (per-version lookup, full version list, sparse
// index feed); all of them distinguish "version not found" from transport
// failure, and all of them refuse responses that name a different crate.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the crates.io web API root.
	DefaultAPIURL = "https://crates.io"
	// DefaultIndexURL is the crates.io sparse index root.
	DefaultIndexURL = "https://index.crates.io"

	defaultMaxAttempts = 3
	userAgent          = "crateship (github.com/odvcencio/crateship)"
)

// Checker reports whether version is already published for crate name.
// A false return with nil error means the version is new; any transport
// or integrity failure is returned as a non-nil error and must never be
// interpreted as "new".
type Checker interface {
	Released(ctx context.Context, name, version string) (bool, error)
}

// IntegrityError reports a registry record that names a crate other than
// the one queried. It signals a corrupted or misdirected response and is
// always fatal; it is never folded into "not found".
type IntegrityError struct {
	Expected string
	Got      string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("registry integrity: record names crate %q, expected %q", e.Got, e.Expected)
}

func httpClientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func attemptsOrDefault(n int) int {
	if n > 0 {
		return n
	}
	return defaultMaxAttempts
}

func newGetRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func trimBaseURL(base, fallback string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fallback
	}
	return strings.TrimRight(base, "/")
}
