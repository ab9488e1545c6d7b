// Package whisper turns a 16 kHz mono wave file into ordered, time-stamped
// text segments.
package whisper

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// ErrNoOutput is returned when the engine finished without producing a result file.
var ErrNoOutput = errors.New("transcriber produced no output")

// Transcriber is the speech-to-text collaborator. Implementations are shared
// across concurrent jobs and must not keep per-call state.
type Transcriber interface {
	// Transcribe returns segments in non-decreasing start order.
	Transcribe(ctx context.Context, wavPath string) ([]segment.Segment, error)
	Name() string
}

// Options configures the whisper.cpp command line.
type Options struct {
	BinaryPath  string
	ModelPath   string
	Language    string
	Prompt      string
	Threads     int
	Temperature float64
}
