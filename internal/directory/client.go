// Package directory fetches contributor rosters from a remote people directory.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MikeSquared-Agency/Roadmap/internal/intake"
	"github.com/MikeSquared-Agency/Roadmap/internal/roadmap"
)

type Client interface {
	ListContributors(ctx context.Context) ([]roadmap.Contributor, error)
	GetContributor(ctx context.Context, name string) (*roadmap.Contributor, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("directory %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

// ListContributors returns the whole roster. Every entry is validated; one bad
// entry fails the call.
func (c *HTTPClient) ListContributors(ctx context.Context) ([]roadmap.Contributor, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/contributors")
	if err != nil {
		return nil, err
	}
	var contributors []roadmap.Contributor
	if err := json.Unmarshal(data, &contributors); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	for _, contributor := range contributors {
		if err := intake.ValidateContributor(contributor); err != nil {
			return nil, fmt.Errorf("directory roster: %w", err)
		}
	}
	return contributors, nil
}

func (c *HTTPClient) GetContributor(ctx context.Context, name string) (*roadmap.Contributor, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/contributors/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	var contributor roadmap.Contributor
	if err := json.Unmarshal(data, &contributor); err != nil {
		return nil, fmt.Errorf("decode contributor: %w", err)
	}
	if err := intake.ValidateContributor(contributor); err != nil {
		return nil, fmt.Errorf("directory contributor: %w", err)
	}
	return &contributor, nil
}
