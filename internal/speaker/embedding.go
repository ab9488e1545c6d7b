package speaker

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two embeddings of different length
// are compared.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedding is a fixed-length voiceprint of one audio slice.
type Embedding []float32

// CosineDistance returns 1 - cosine similarity, in [0, 2].
// A zero vector is treated as orthogonal to everything (distance 1).
func CosineDistance(a, b Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 1, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return 1 - sim, nil
}
