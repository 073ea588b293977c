// Package github is a minimal read-only client for the GitHub commits
// API, used to source commit timestamps for hour estimation.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tiliavir/planner-time-tracker/internal/model"
)

const defaultAPIURL = "https://api.github.com"

// Client talks to the GitHub REST API. A token is optional for public
// repositories.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
}

// NewClient creates a client. apiURL "" selects the public API; set it
// for GitHub Enterprise or tests.
func NewClient(apiURL, token string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      token,
	}
}

// wireCommit is one element of the commits listing response.
type wireCommit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Commits lists the commits of repo ("owner/name") authored since the
// given time, following pagination. No author filtering happens here;
// that is the estimator's job.
func (c *Client) Commits(ctx context.Context, repo string, since time.Time) ([]model.Commit, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/commits?since=%s&per_page=100",
		c.apiURL, repo, url.QueryEscape(since.UTC().Format(time.RFC3339)))

	var all []model.Commit
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("github API request failed: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		next := nextPageURL(resp.Header.Get("Link"))
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("github API error %d for %s: %s", resp.StatusCode, repo, body)
		}

		var page []wireCommit
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding github response: %w", err)
		}
		for _, w := range page {
			all = append(all, model.Commit{
				SHA:       w.SHA,
				Repo:      repo,
				Message:   w.Commit.Message,
				Timestamp: w.Commit.Author.Date,
				Author:    w.Commit.Author.Name,
				URL:       w.HTMLURL,
			})
		}
		endpoint = next
	}
	return all, nil
}

// nextPageURL extracts the rel="next" target from a Link header, or ""
// when there is no next page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		segs := strings.Split(strings.TrimSpace(part), ";")
		if len(segs) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(segs[0]), "<>")
		for _, attr := range segs[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}
