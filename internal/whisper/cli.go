package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// cliOutput mirrors the JSON file written by whisper.cpp with -oj.
type cliOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *implCLI) Name() string {
	return "whisper.cpp"
}

// Transcribe runs whisper.cpp with JSON output next to the wave file and
// converts the millisecond offsets to seconds. Segments with blank text are
// dropped.
func (w *implCLI) Transcribe(ctx context.Context, wavPath string) ([]segment.Segment, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	w.logger.Info(ctx, "Starting transcription with %d threads (language %s): %s",
		w.opts.Threads, w.opts.Language, wavPath)

	if _, err := w.executor.Execute(ctx, w.opts.BinaryPath, w.args(wavPath, outputPrefix)...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoOutput
		}
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	segs, err := parseOutput(data)
	if err != nil {
		return nil, err
	}

	w.logger.Info(ctx, "Transcription completed: %d segments", len(segs))
	return segs, nil
}

// -oj: JSON output, -of: output prefix, -tp: sampling temperature.
func (w *implCLI) args(wavPath, outputPrefix string) []string {
	args := []string{
		"-m", w.opts.ModelPath,
		"-f", wavPath,
		"-l", w.opts.Language,
		"-t", strconv.Itoa(w.opts.Threads),
		"-oj",
		"-of", outputPrefix,
	}
	if w.opts.Temperature > 0 {
		args = append(args, "-tp", strconv.FormatFloat(w.opts.Temperature, 'f', -1, 64))
	}
	if w.opts.Prompt != "" {
		args = append(args, "--prompt", w.opts.Prompt)
	}
	return args
}

func parseOutput(data []byte) ([]segment.Segment, error) {
	var out cliOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segs := make([]segment.Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		segs = append(segs, segment.Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
	}
	return segs, nil
}
