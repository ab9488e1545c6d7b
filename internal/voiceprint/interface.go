// Package voiceprint extracts speaker embeddings from short wave slices.
package voiceprint

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
)

var (
	// ErrEmptyAudio is returned for slices without usable samples.
	ErrEmptyAudio = errors.New("audio slice has no samples")
	// ErrEmptyEmbedding is returned when the model yields a zero-length vector.
	ErrEmptyEmbedding = errors.New("extractor returned an empty embedding")
)

// Extractor is the voice-embedding collaborator. One Extractor is built per
// process and shared read-only by concurrent jobs.
type Extractor interface {
	Extract(ctx context.Context, wavPath string) (speaker.Embedding, error)
	Name() string
	Close() error
}
