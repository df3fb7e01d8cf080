package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// IndexChecker streams the crate's file from a sparse registry index
// (one JSON object per published version, one per line) and scans for
// the version. Gzip-encoded responses are decoded transparently.
type IndexChecker struct {
	IndexURL    string
	HTTPClient  *http.Client
	MaxAttempts int
}

type indexEntry struct {
	Name string `json:"name"`
	Vers string `json:"vers"`
}

func (c *IndexChecker) Released(ctx context.Context, name, version string) (bool, error) {
	endpoint := trimBaseURL(c.IndexURL, DefaultIndexURL) + "/" + IndexPath(name)
	req, err := newGetRequest(ctx, endpoint)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := retryGet(httpClientOrDefault(c.HTTPClient), req, attemptsOrDefault(c.MaxAttempts))
	if err != nil {
		return false, fmt.Errorf("fetch index %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		// No index file yet: the crate has never been published.
		return false, nil
	default:
		return false, fmt.Errorf("fetch index %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return false, fmt.Errorf("fetch index %s: gzip: %w", endpoint, err)
		}
		defer gz.Close()
		body = gz
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry indexEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return false, fmt.Errorf("fetch index %s: decode line: %w", endpoint, err)
		}
		if entry.Name != name {
			return false, &IntegrityError{Expected: name, Got: entry.Name}
		}
		if entry.Vers == version {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("fetch index %s: read: %w", endpoint, err)
	}
	return false, nil
}

// IndexPath returns the crate's file path inside a sparse registry index,
// following the crates.io layout: one- and two-character names live under
// "1/" and "2/", three-character names under "3/<first char>/", and
// everything else under "<first two>/<next two>/".
func IndexPath(name string) string {
	lower := strings.ToLower(name)
	switch len(lower) {
	case 0:
		return ""
	case 1:
		return "1/" + lower
	case 2:
		return "2/" + lower
	case 3:
		return "3/" + lower[:1] + "/" + lower
	default:
		return lower[:2] + "/" + lower[2:4] + "/" + lower
	}
}
