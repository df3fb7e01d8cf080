package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// LookupChecker queries the per-version API endpoint
// /api/v1/crates/{name}/{version}. A 404 means the version has not been
// published; a 200 must describe exactly the crate and version asked for.
type LookupChecker struct {
	APIURL      string
	HTTPClient  *http.Client
	MaxAttempts int
}

type versionRecord struct {
	Crate string `json:"crate"`
	Num   string `json:"num"`
}

type lookupResponse struct {
	Version versionRecord `json:"version"`
}

func (c *LookupChecker) Released(ctx context.Context, name, version string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/v1/crates/%s/%s",
		trimBaseURL(c.APIURL, DefaultAPIURL), url.PathEscape(name), url.PathEscape(version))
	req, err := newGetRequest(ctx, endpoint)
	if err != nil {
		return false, err
	}

	resp, err := retryGet(httpClientOrDefault(c.HTTPClient), req, attemptsOrDefault(c.MaxAttempts))
	if err != nil {
		return false, fmt.Errorf("query %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("query %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return false, fmt.Errorf("query %s: decode response: %w", endpoint, err)
	}
	if parsed.Version.Crate != name {
		return false, &IntegrityError{Expected: name, Got: parsed.Version.Crate}
	}
	if parsed.Version.Num != version {
		return false, fmt.Errorf("query %s: response describes version %q, expected %q",
			endpoint, parsed.Version.Num, version)
	}
	return true, nil
}
