package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklore/librarian/internal/core/domain"
)

func collectionJSON(points int64, size int) string {
	return `{"result":{"points_count":` + jsonInt(points) + `,"config":{"params":{"vectors":{"size":` + jsonInt(int64(size)) + `,"distance":"Cosine"}}}},"status":"ok"}`
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestEnsureCollection_CreatesWhenMissing(t *testing.T) {
	var created atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections/library":
			http.Error(w, `{"status":{"error":"not found"}}`, http.StatusNotFound)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/library":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			vectors := body["vectors"].(map[string]any)
			assert.Equal(t, float64(768), vectors["size"])
			assert.Equal(t, "Cosine", vectors["distance"])
			created.Store(true)
			w.Write([]byte(`{"result":true,"status":"ok"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, client.EnsureCollection(context.Background(), "library", 768))
	assert.True(t, created.Load())
}

func TestEnsureCollection_ExistingMatchingDimension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collectionJSON(42, 768)))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	assert.NoError(t, client.EnsureCollection(context.Background(), "library", 768))
}

func TestEnsureCollection_DimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collectionJSON(42, 384)))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.EnsureCollection(context.Background(), "library", 768)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestUpsert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/library/points", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))

		var body struct {
			Points []pointRecord `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Points, 1)
		assert.Equal(t, "abc123", body.Points[0].Payload.ContentHash)
		assert.Equal(t, 0, body.Points[0].Payload.ChunkIndex)
		w.Write([]byte(`{"result":{"status":"completed"},"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Upsert(context.Background(), "library", []domain.Point{
		{
			ID:     domain.PointID("abc123", 0),
			Vector: []float32{0.1, 0.2},
			Payload: domain.PointPayload{
				ContentHash: "abc123",
				FileName:    "book.txt",
				Collection:  "library",
				ChunkIndex:  0,
				Format:      "text",
			},
		},
	})
	assert.NoError(t, err)
}

func TestUpsert_Empty(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	assert.NoError(t, client.Upsert(context.Background(), "library", nil))
}

func TestUpsert_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Upsert(context.Background(), "library", []domain.Point{{ID: domain.PointID("h", 0)}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestUpsert_BadRequestDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "wrong vector size", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.Upsert(context.Background(), "library", []domain.Point{{ID: domain.PointID("h", 0)}})
	require.ErrorIs(t, err, domain.ErrVectorStore)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeleteByHash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/library/points/delete", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		must := body["filter"].(map[string]any)["must"].([]any)
		cond := must[0].(map[string]any)
		assert.Equal(t, "content_hash", cond["key"])
		assert.Equal(t, "abc123", cond["match"].(map[string]any)["value"])
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	assert.NoError(t, client.DeleteByHash(context.Background(), "library", "abc123"))
}

func TestDeleteCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/collections/old", r.URL.Path)
		w.Write([]byte(`{"result":true,"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	assert.NoError(t, client.DeleteCollection(context.Background(), "old"))
}

func TestCollectionInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collectionJSON(1234, 768)))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	info, err := client.CollectionInfo(context.Background(), "library")
	require.NoError(t, err)
	assert.Equal(t, "library", info.Name)
	assert.Equal(t, int64(1234), info.PointCount)
	assert.Equal(t, 768, info.Dimensions)
}

func TestCollectionInfo_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CollectionInfo(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections", r.URL.Path)
		w.Write([]byte(`{"result":{"collections":[{"name":"library"},{"name":"papers"}]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	names, err := client.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"library", "papers"}, names)
}

func TestAPIKeyHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		w.Write([]byte(`{"result":{"collections":[]}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "secret"})
	_, err := client.ListCollections(context.Background())
	assert.NoError(t, err)
}
