// Package qdrant provides a vector store adapter for the Qdrant REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/booklore/librarian/internal/adapters/driven/retry"
	"github.com/booklore/librarian/internal/core/domain"
	"github.com/booklore/librarian/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.VectorStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:6333"
	DefaultTimeout = 30 * time.Second

	// distance is the similarity metric used for every collection.
	distance = "Cosine"
)

// Config holds configuration for the Qdrant client.
type Config struct {
	// BaseURL is the Qdrant REST endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey is sent as the api-key header when set.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to Qdrant over its REST API. All writes use wait=true so a
// 2xx response means the change is durable; combined with deterministic
// point ids that makes Upsert safe to repeat after partial failure.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Qdrant client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// collectionResponse is the GET /collections/{name} response.
type collectionResponse struct {
	Result struct {
		PointsCount int64 `json:"points_count"`
		Config      struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
	Status string `json:"status"`
}

// listResponse is the GET /collections response.
type listResponse struct {
	Result struct {
		Collections []struct {
			Name string `json:"name"`
		} `json:"collections"`
	} `json:"result"`
}

// pointRecord is the wire format for one upserted point.
type pointRecord struct {
	ID      string              `json:"id"`
	Vector  []float32           `json:"vector"`
	Payload domain.PointPayload `json:"payload"`
}

// EnsureCollection creates the collection if missing, or verifies that an
// existing one has the expected vector dimension.
func (c *Client) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("%w: collection %q: dimensions must be positive", domain.ErrInvalidInput, name)
	}

	info, err := c.CollectionInfo(ctx, name)
	switch {
	case err == nil:
		if info.Dimensions != dimensions {
			return fmt.Errorf("%w: collection %q has dimension %d, embedding model produces %d",
				domain.ErrDimensionMismatch, name, info.Dimensions, dimensions)
		}
		return nil
	case errors.Is(err, domain.ErrNotFound):
		body := map[string]any{
			"vectors": map[string]any{
				"size":     dimensions,
				"distance": distance,
			},
		}
		return c.call(ctx, http.MethodPut, "/collections/"+url.PathEscape(name), body, nil)
	default:
		return err
	}
}

// Upsert stores or overwrites the given points in the collection.
func (c *Client) Upsert(ctx context.Context, collection string, points []domain.Point) error {
	if len(points) == 0 {
		return nil
	}

	records := make([]pointRecord, len(points))
	for i, p := range points {
		records[i] = pointRecord{ID: p.ID, Vector: p.Vector, Payload: p.Payload}
	}

	path := "/collections/" + url.PathEscape(collection) + "/points?wait=true"
	return c.call(ctx, http.MethodPut, path, map[string]any{"points": records}, nil)
}

// DeleteByHash removes every point whose payload content_hash matches.
func (c *Client) DeleteByHash(ctx context.Context, collection, contentHash string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{
					"key":   "content_hash",
					"match": map[string]any{"value": contentHash},
				},
			},
		},
	}
	path := "/collections/" + url.PathEscape(collection) + "/points/delete?wait=true"
	return c.call(ctx, http.MethodPost, path, body, nil)
}

// DeleteCollection drops the whole collection.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.call(ctx, http.MethodDelete, "/collections/"+url.PathEscape(name), nil, nil)
}

// CollectionInfo returns stats for one collection, or domain.ErrNotFound.
func (c *Client) CollectionInfo(ctx context.Context, name string) (*driven.CollectionInfo, error) {
	var resp collectionResponse
	if err := c.call(ctx, http.MethodGet, "/collections/"+url.PathEscape(name), nil, &resp); err != nil {
		return nil, err
	}
	return &driven.CollectionInfo{
		Name:       name,
		PointCount: resp.Result.PointsCount,
		Dimensions: resp.Result.Config.Params.Vectors.Size,
	}, nil
}

// ListCollections returns the names of all collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var resp listResponse
	if err := c.call(ctx, http.MethodGet, "/collections", nil, &resp); err != nil {
		return nil, err
	}
	names := make([]string, len(resp.Result.Collections))
	for i, col := range resp.Result.Collections {
		names[i] = col.Name
	}
	return names, nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// call performs one API request with retry on transport errors and 5xx.
// A 404 maps to domain.ErrNotFound, other failures to domain.ErrVectorStore.
func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	err := retry.Do(ctx, retry.DefaultAttempts, retry.DefaultBaseDelay, func() error {
		var reader io.Reader = http.NoBody
		if jsonBody != nil {
			reader = bytes.NewReader(jsonBody)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		if jsonBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("api-key", c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("send request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return retry.Permanent(fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path))
		case resp.StatusCode >= 500:
			return fmt.Errorf("qdrant error (status %d): %s", resp.StatusCode, string(respBody))
		case resp.StatusCode >= 400:
			return retry.Permanent(fmt.Errorf("qdrant error (status %d): %s", resp.StatusCode, string(respBody)))
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return retry.Permanent(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrVectorStore, err)
	}
	return nil
}
