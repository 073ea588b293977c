package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client is an authenticated client for the Planner task API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client using the provided token and config.
func NewClient(ctx context.Context, tok *oauth2.Token, cfg *oauth2.Config) *Client {
	ts := cfg.TokenSource(ctx, tok)
	return &Client{
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts}),
		baseURL:    graphBaseURL,
	}
}

// NewClientWithHTTP creates a client over an arbitrary HTTP client and
// base URL. Used in tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	// Best-effort save; ignore errors.
	_ = saveToken(tok)
	return tok, nil
}

// taskPage is the paged response of the tasks endpoint.
type taskPage struct {
	Value    []Task `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// bucketPage is the paged response of the buckets endpoint.
type bucketPage struct {
	Value    []Bucket `json:"value"`
	NextLink string   `json:"@odata.nextLink"`
}

// Me is the signed-in user's profile.
type Me struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// do executes a request, maps non-success statuses through the error
// taxonomy, and decodes a JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any, want int) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("planner API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != want {
		return statusError(resp.StatusCode, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding planner response: %w", err)
		}
	}
	return nil
}

// MyTasks fetches the signed-in user's tasks, following pagination.
// Completed tasks created more than lookbackMonths before now are
// dropped; open tasks are always kept. Pass lookbackMonths <= 0 for no
// cutoff. The order of each task's appliedCategories is preserved as
// returned by the server.
func (c *Client) MyTasks(ctx context.Context, lookbackMonths int) ([]Task, error) {
	endpoint := c.baseURL + "/me/planner/tasks"

	var all []Task
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		var page taskPage
		if err := c.do(req, &page, http.StatusOK); err != nil {
			return nil, err
		}
		all = append(all, page.Value...)
		endpoint = page.NextLink
	}

	if lookbackMonths <= 0 {
		return all, nil
	}
	cutoff := time.Now().AddDate(0, -lookbackMonths, 0)
	kept := all[:0]
	for _, t := range all {
		if t.PercentComplete < 100 || t.CreatedAt.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

// Buckets fetches the buckets of a plan.
func (c *Client) Buckets(ctx context.Context, planID string) ([]Bucket, error) {
	endpoint := fmt.Sprintf("%s/planner/plans/%s/buckets", c.baseURL, planID)

	var all []Bucket
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		var page bucketPage
		if err := c.do(req, &page, http.StatusOK); err != nil {
			return nil, err
		}
		all = append(all, page.Value...)
		endpoint = page.NextLink
	}
	return all, nil
}

// GetTask fetches a single task, including a fresh concurrency token.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/planner/tasks/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	var t Task
	if err := c.do(req, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask creates a task and returns the created record.
func (c *Client) CreateTask(ctx context.Context, spec TaskSpec) (*Task, error) {
	payload, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshalling task spec: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/planner/tasks", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	var t Task
	if err := c.do(req, &t, http.StatusCreated); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask applies a partial update. etag must be the concurrency
// token read at fetch time; a stale token surfaces as ErrConflict.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch, etag string) error {
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshalling task patch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/planner/tasks/"+id, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("If-Match", etag)
	return c.do(req, nil, http.StatusNoContent)
}

// DeleteTask deletes a task. Same concurrency-token rules as UpdateTask.
func (c *Client) DeleteTask(ctx context.Context, id string, etag string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/planner/tasks/"+id, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("If-Match", etag)
	return c.do(req, nil, http.StatusNoContent)
}

// WhoAmI fetches the signed-in user's profile.
func (c *Client) WhoAmI(ctx context.Context) (*Me, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	var me Me
	if err := c.do(req, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}
