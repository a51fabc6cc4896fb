package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestHashed_Deterministic(t *testing.T) {
	h := NewHashed()

	v1, err := h.GenerateEmbedding(context.Background(), []byte("same image"))
	require.NoError(t, err)
	v2, err := h.GenerateEmbedding(context.Background(), []byte("same image"))
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, HashedDims)
}

func TestHashed_DifferentInputsDiffer(t *testing.T) {
	h := NewHashed()

	v1, err := h.GenerateEmbedding(context.Background(), []byte("image a"))
	require.NoError(t, err)
	v2, err := h.GenerateEmbedding(context.Background(), []byte("image b"))
	require.NoError(t, err)

	assert.NotEqual(t, v1, v2)
}

func TestHashed_RangeZeroToOne(t *testing.T) {
	h := NewHashed()

	vector, err := h.GenerateEmbedding(context.Background(), []byte("x"))
	require.NoError(t, err)
	for _, f := range vector {
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestRegistry_FirstRegisteredIsDefault(t *testing.T) {
	r := NewRegistry()
	r.Register(NewHashed())

	p, err := r.Default()
	require.NoError(t, err)
	assert.Equal(t, "hashed", p.Name())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	_, err := r.Default()
	assert.Error(t, err)
}

func TestRemote_GenerateEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]any{"vector": []float64{0.1, 0.2}})
	}))
	defer srv.Close()

	remote, err := NewRemote("facenet", srv.URL)
	require.NoError(t, err)

	vector, err := remote.GenerateEmbedding(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, vector)
	assert.Equal(t, "facenet", remote.Name())
}

func TestRemote_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	remote, err := NewRemote("facenet", srv.URL)
	require.NoError(t, err)

	_, err = remote.GenerateEmbedding(context.Background(), []byte("img"))
	assert.Error(t, err)
}

func TestRemote_RequiresEndpoint(t *testing.T) {
	_, err := NewRemote("facenet", "")
	assert.Error(t, err)
}

func TestSelect_FallsBackWithoutEndpoint(t *testing.T) {
	p := Select("facenet", "", slog.Default())
	assert.Equal(t, "hashed", p.Name())
}

func TestSelect_PrefersConfiguredName(t *testing.T) {
	p := Select("hashed", "http://localhost:9999/embed", slog.Default())
	assert.Equal(t, "hashed", p.Name())
}

func TestSelect_UnknownNameUsesFirstRegistered(t *testing.T) {
	p := Select("resnet", "http://localhost:9999/embed", slog.Default())
	assert.Equal(t, "facenet", p.Name())
}
