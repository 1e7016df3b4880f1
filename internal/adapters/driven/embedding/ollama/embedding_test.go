package ollama

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

func TestEmbed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello world", req.Prompt)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	embedding, err := svc.Embed(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embedding)
}

func TestEmbed_ServerErrorRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{1}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	embedding, err := svc.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, embedding)
	assert.Equal(t, int32(3), calls.Load())
}

func TestEmbed_ClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	_, err := svc.Embed(context.Background(), "text")
	require.ErrorIs(t, err, domain.ErrEmbeddingService)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmbedBatch(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{float64(n)}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	embeddings, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float32{1}, embeddings[0])
	assert.Equal(t, []float32{2}, embeddings[1])
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
	err := svc.Ping(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestDefaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}
