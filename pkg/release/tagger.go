package release

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Tagger records a released commit under a tag name. Two implementations
// exist: GitTagger pushes a local tag, APITagger creates the ref through
// the hosting platform's API. Both create the tag at most once and never
// check for a preexisting tag first.
type Tagger interface {
	Tag(ctx context.Context, name, sha string) error
}

// GitTagger creates a local lightweight tag and pushes it to the remote.
// The sha argument is unused: `git tag` targets HEAD, which is the same
// commit the executor resolved.
type GitTagger struct {
	Runner Runner
	Dir    string
	Remote string
	Out    io.Writer
}

func (t *GitTagger) Tag(ctx context.Context, name, _ string) error {
	remote := strings.TrimSpace(t.Remote)
	if remote == "" {
		remote = "origin"
	}
	out := t.Out
	if out == nil {
		out = io.Discard
	}
	if err := t.Runner.Run(ctx, t.Dir, out, out, "git", "tag", name); err != nil {
		return err
	}
	return t.Runner.Run(ctx, t.Dir, out, out, "git", "push", remote, name)
}

// APITagger creates a refs/tags reference via the GitHub git-refs API.
type APITagger struct {
	BaseURL    string
	Owner      string
	Repo       string
	Token      string
	HTTPClient *http.Client
}

type createRefRequest struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

func (t *APITagger) Tag(ctx context.Context, name, sha string) error {
	payload, err := json.Marshal(createRefRequest{Ref: "refs/tags/" + name, SHA: sha})
	if err != nil {
		return err
	}

	base := strings.TrimSpace(t.BaseURL)
	if base == "" {
		base = "https://api.github.com"
	}
	endpoint := fmt.Sprintf("%s/repos/%s/%s/git/refs", strings.TrimRight(base, "/"), t.Owner, t.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if token := strings.TrimSpace(t.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := t.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("create ref: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	message := strings.TrimSpace(string(body))
	var parsed apiErrorResponse
	if json.Unmarshal(body, &parsed) == nil && strings.TrimSpace(parsed.Message) != "" {
		message = strings.TrimSpace(parsed.Message)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if strings.TrimSpace(t.Token) == "" {
			return fmt.Errorf("create ref failed (%d): set GITHUB_TOKEN", resp.StatusCode)
		}
	}
	return fmt.Errorf("create ref failed (%d): %s", resp.StatusCode, message)
}
