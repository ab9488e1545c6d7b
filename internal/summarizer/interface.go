package summarizer

import "context"

// Summarizer turns transcript plain text into an LLM-written summary.
type Summarizer interface {
	// Summarize cleans and chunks text, summarizes each chunk with prompt and
	// joins the chunk summaries with newlines.
	Summarize(ctx context.Context, text, prompt string) (string, error)
}
