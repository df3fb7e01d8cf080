package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ListChecker fetches every known version of the crate from
// /api/v1/crates/{name}/versions and scans for an exact match.
type ListChecker struct {
	APIURL      string
	HTTPClient  *http.Client
	MaxAttempts int
}

type versionListResponse struct {
	Versions []versionRecord `json:"versions"`
}

func (c *ListChecker) Released(ctx context.Context, name, version string) (bool, error) {
	endpoint := fmt.Sprintf("%s/api/v1/crates/%s/versions",
		trimBaseURL(c.APIURL, DefaultAPIURL), url.PathEscape(name))
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
		// Crate has never been published.
		return false, nil
	default:
		return false, fmt.Errorf("query %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var parsed versionListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&parsed); err != nil {
		return false, fmt.Errorf("query %s: decode response: %w", endpoint, err)
	}

	for _, rec := range parsed.Versions {
		if rec.Crate != name {
			return false, &IntegrityError{Expected: name, Got: rec.Crate}
		}
		if rec.Num == version {
			return true, nil
		}
	}
	return false, nil
}
