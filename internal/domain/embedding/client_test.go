package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTEIServer(t *testing.T, dimension int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/info":
			_ = json.NewEncoder(w).Encode(ModelInfo{ModelID: "nomic-embed-text"})
		case "/embed":
			atomic.AddInt32(calls, 1)
			var req EmbedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.True(t, req.Normalize)

			vectors := make([][]float32, len(req.Inputs))
			for i := range vectors {
				vectors[i] = make([]float32, dimension)
				for j := range vectors[i] {
					vectors[i][j] = float32(i+j) / float32(dimension)
				}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(vectors)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestTEIClientEmbedUsesCache(t *testing.T) {
	var calls int32
	server := newTEIServer(t, 8, &calls)
	defer server.Close()

	cache, err := NewCache(CacheConfig{Type: CacheTypeMemory, MaxSize: 10, TTL: time.Minute}, nil)
	require.NoError(t, err)
	client := NewTEIClient(server.URL, "nomic-embed-text", 8, time.Second, cache)

	ctx := context.Background()
	first, err := client.Embed(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Len(t, first[0], 8)

	second, err := client.Embed(ctx, []string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, first[1], second[0])
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	_, err = client.EmbedSingle(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTEIClientRejectsWrongDimension(t *testing.T) {
	var calls int32
	server := newTEIServer(t, 4, &calls)
	defer server.Close()

	client := NewTEIClient(server.URL, "nomic-embed-text", 8, time.Second, NewNoOpsCache())

	_, err := client.EmbedSingle(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.ErrorIs(t, client.ValidateServer(context.Background()), ErrDimensionMismatch)
}

func TestTEIClientValidateServer(t *testing.T) {
	var calls int32
	server := newTEIServer(t, 8, &calls)
	defer server.Close()

	client := NewTEIClient(server.URL, "nomic-embed-text", 8, time.Second, nil)
	assert.NoError(t, client.ValidateServer(context.Background()))
}

func TestOpenAIClientEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-004", req.Model)

		data := make([]map[string]any, len(req.Input))
		// answer out of order to check index sorting
		for i := range req.Input {
			pos := len(req.Input) - 1 - i
			data[i] = map[string]any{"object": "embedding", "index": pos, "embedding": []float32{float32(pos), 0, 0}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data, "model": req.Model})
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		BaseURL:   server.URL,
		APIKey:    "secret",
		Model:     "text-embedding-004",
		Dimension: 3,
		Timeout:   time.Second,
	}, nil)

	vectors, err := client.Embed(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, vectors[0])
	assert.Equal(t, []float32{1, 0, 0}, vectors[1])
}

func TestMemoryCacheExpires(t *testing.T) {
	cache, err := NewMemoryCache(4, time.Minute)
	require.NoError(t, err)
	now := time.Now()
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	cache.Set(ctx, "k", []float32{1})
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewCacheRejectsRedisWithoutStore(t *testing.T) {
	_, err := NewCache(CacheConfig{Type: CacheTypeRedis}, nil)
	assert.Error(t, err)

	_, err = NewCache(CacheConfig{Type: "disk"}, nil)
	assert.Error(t, err)
}

func TestCacheKeyDependsOnModel(t *testing.T) {
	assert.NotEqual(t, CacheKey("a", "text"), CacheKey("b", "text"))
	assert.Equal(t, CacheKey("a", "text"), CacheKey("a", "text"))
}
