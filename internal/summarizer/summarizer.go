package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"google.golang.org/genai"
)

// ErrEmptyText is returned when nothing is left to summarize after cleaning.
var ErrEmptyText = errors.New("no text to summarize")

func (s *implSummarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	chunks := SplitText(CleanText(text), s.maxChunkSize)
	if len(chunks) == 0 {
		return "", ErrEmptyText
	}

	s.logger.Info(ctx, "Summarizing %d chunk(s)", len(chunks))

	var summaries []string
	for i, chunk := range chunks {
		out, err := s.gen.generate(ctx, BuildPrompt(prompt, chunk))
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if out = strings.TrimSpace(out); out != "" {
			summaries = append(summaries, out)
		}
	}

	if len(summaries) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return strings.Join(summaries, "\n"), nil
}

// geminiGenerator is shared by concurrent jobs; mu guards currentKey.
type geminiGenerator struct {
	apiKeys []string
	model   string
	logger  logger.Logger
	// baseURL overrides the Gemini endpoint when set.
	baseURL string

	mu         sync.Mutex
	currentKey int
}

// generate sends one prompt to Gemini. Rotates API keys on 429 / quota errors.
func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := g.key()

		cc := &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		}
		if g.baseURL != "" {
			cc.HTTPOptions.BaseURL = g.baseURL
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateFrom(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateFrom(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part != nil && part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (g *geminiGenerator) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateFrom advances past idx. Jobs that failed on the same key only
// rotate once.
func (g *geminiGenerator) rotateFrom(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (idx + 1) % len(g.apiKeys)
	}
}
