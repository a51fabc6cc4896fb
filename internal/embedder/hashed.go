package embedder

import (
	"context"
	"crypto/sha256"
)

// HashedDims keeps the fallback vectors shaped like FaceNet-style output.
const HashedDims = 128

// Hashed is a deterministic stand-in embedder: a stable hash of the input
// expanded to a fixed-length vector in [0,1]. It keeps the interface live
// when the real model is unavailable.
type Hashed struct{}

func NewHashed() *Hashed { return &Hashed{} }

func (h *Hashed) Name() string { return "hashed" }

func (h *Hashed) GenerateEmbedding(_ context.Context, image []byte) ([]float64, error) {
	digest := sha256.Sum256(image)

	vector := make([]float64, HashedDims)
	for i := range vector {
		vector[i] = float64(digest[i%len(digest)]) / 255
	}
	return vector, nil
}
