package processor

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/voiceprint"
	"github.com/nguyentantai21042004/meeting-scribe/internal/whisper"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

// Runtime holds the model handles shared by every job in the process. It is
// built once at startup and is read-only afterwards.
type Runtime struct {
	Transcriber whisper.Transcriber
	// Extractor is nil when speaker diarization is disabled.
	Extractor voiceprint.Extractor
}

// NewRuntime loads the transcription and embedding models named by cfg.
func NewRuntime(cfg *config.Config, exec executor.Executor, log logger.Logger) (*Runtime, error) {
	if _, err := exec.LookPath(cfg.Whisper.BinaryPath); err != nil {
		return nil, fmt.Errorf("whisper binary: %w", err)
	}

	rt := &Runtime{
		Transcriber: whisper.NewCLI(whisper.Options{
			BinaryPath:  cfg.Whisper.BinaryPath,
			ModelPath:   cfg.Whisper.ModelPath,
			Language:    cfg.Whisper.Language,
			Prompt:      cfg.Whisper.Prompt,
			Threads:     cfg.Whisper.Threads,
			Temperature: cfg.Whisper.SamplingTemperature(),
		}, exec, log),
	}

	if !cfg.Pipeline.DiarizationEnabled() {
		return rt, nil
	}

	switch cfg.Embedding.Backend {
	case "http":
		rt.Extractor = voiceprint.NewHTTP(cfg.Embedding.URL, time.Duration(cfg.Embedding.TimeoutSec)*time.Second)
	default:
		ext, err := voiceprint.NewONNX(voiceprint.ONNXOptions{
			ModelPath:   cfg.Embedding.ModelPath,
			LibraryPath: cfg.Embedding.LibraryPath,
			InputName:   cfg.Embedding.InputName,
			OutputName:  cfg.Embedding.OutputName,
			SampleRate:  cfg.FFmpeg.SampleRate,
			Threads:     cfg.Embedding.Threads,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("load embedding model: %w", err)
		}
		rt.Extractor = ext
	}
	return rt, nil
}

// Close releases the embedding model.
func (rt *Runtime) Close() error {
	if rt == nil || rt.Extractor == nil {
		return nil
	}
	return rt.Extractor.Close()
}
