package summarizer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

// ErrNoAPIKeys is returned by New when no Gemini key is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// generator produces text for one prompt.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type implSummarizer struct {
	gen          generator
	maxChunkSize int
	logger       logger.Logger
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, maxChunkSize int, log logger.Logger) (Summarizer, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoAPIKeys
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return newWithGenerator(&geminiGenerator{apiKeys: apiKeys, model: model, logger: log}, maxChunkSize, log), nil
}

func newWithGenerator(gen generator, maxChunkSize int, log logger.Logger) *implSummarizer {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}
	return &implSummarizer{
		gen:          gen,
		maxChunkSize: maxChunkSize,
		logger:       log,
	}
}
