package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"movieportal/domain/core/entities"
)

// ErrMovieGone is returned when the movie no longer exists
var ErrMovieGone = errors.New("movie no longer exists")

// Patch is the partial update the worker sends back
type Patch struct {
	Director *string   `json:"director,omitempty"`
	Synopsis *string   `json:"synopsis,omitempty"`
	Actors   *[]string `json:"actors,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Director == nil && p.Synopsis == nil && p.Actors == nil
}

// PortalClient talks to the portal API as an administrative principal
type PortalClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewPortalClient creates a client for baseURL authenticating with token
func NewPortalClient(baseURL, token string, client *http.Client) *PortalClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &PortalClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// GetMovie loads the current record
func (c *PortalClient) GetMovie(ctx context.Context, id string) (*entities.Movie, error) {
	var movie entities.Movie
	if err := c.do(ctx, http.MethodGet, id, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpdateMovie applies patch to the movie
func (c *PortalClient) UpdateMovie(ctx context.Context, id string, patch Patch) error {
	return c.do(ctx, http.MethodPut, id, patch, nil)
}

func (c *PortalClient) do(ctx context.Context, method, id string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/movies/"+url.PathEscape(id), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("portal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrMovieGone
	}
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("portal returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
