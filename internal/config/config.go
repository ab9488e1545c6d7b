package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Summary     SummaryConfig     `yaml:"summary"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type WhisperConfig struct {
	ModelPath   string  `yaml:"model_path"`
	BinaryPath  string  `yaml:"binary_path"`
	Language    string  `yaml:"language"`
	Prompt      string  `yaml:"prompt"`
	Threads     int     `yaml:"threads"`
	// Temperature is a pointer so an explicit 0 is kept.
	Temperature *float64 `yaml:"temperature"`
}

// SamplingTemperature returns the decoding temperature, 0 when unset.
func (w WhisperConfig) SamplingTemperature() float64 {
	if w.Temperature == nil {
		return 0
	}
	return *w.Temperature
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// PipelineConfig selects which stages of the transcript pipeline run.
type PipelineConfig struct {
	EnableSpeakerDiarization *bool   `yaml:"enable_speaker_diarization"`
	EnableSegmentMerge       bool    `yaml:"enable_segment_merge"`
	TimestampPrecision       string  `yaml:"timestamp_precision"`
	MinDuration              float64 `yaml:"min_duration"`
	MaxGap                   float64 `yaml:"max_gap"`
	DistanceThreshold        *float64 `yaml:"distance_threshold"`
	SpeakerPrefix            string  `yaml:"speaker_prefix"`
	UnknownSpeaker           string  `yaml:"unknown_speaker"`
}

// DiarizationEnabled defaults to true when the key is absent.
func (p PipelineConfig) DiarizationEnabled() bool {
	return p.EnableSpeakerDiarization == nil || *p.EnableSpeakerDiarization
}

// Threshold returns the speaker distance threshold, 0.9 when unset.
func (p PipelineConfig) Threshold() float64 {
	if p.DistanceThreshold == nil {
		return 0.9
	}
	return *p.DistanceThreshold
}

// Precision returns the parsed timestamp precision. Validate rejects bad values.
func (p PipelineConfig) Precision() segment.Precision {
	prec, _ := segment.ParsePrecision(p.TimestampPrecision)
	return prec
}

type EmbeddingConfig struct {
	// Backend is "onnx" or "http".
	Backend     string `yaml:"backend"`
	ModelPath   string `yaml:"model_path"`
	LibraryPath string `yaml:"library_path"`
	InputName   string `yaml:"input_name"`
	OutputName  string `yaml:"output_name"`
	Threads     int    `yaml:"threads"`
	URL         string `yaml:"url"`
	TimeoutSec  int    `yaml:"timeout_sec"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKeys is usually left empty and supplied via GEMINI_API_KEYS.
	APIKeys []string `yaml:"api_keys"`
}

type SummaryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Prompt       string `yaml:"prompt"`
	MaxChunkSize int    `yaml:"max_chunk_size"`
	User         string `yaml:"user"`
	Archive      string `yaml:"archive"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultPrompt asks for a titled summary; {context} is replaced with each chunk.
const DefaultPrompt = "Summarize the following conversation and give it a title: {context}"

// Load reads and validates a YAML config file. GEMINI_API_KEYS, when set,
// overrides gemini.api_keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		cfg.Gemini.APIKeys = nil
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.Gemini.APIKeys = append(cfg.Gemini.APIKeys, k)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if _, err := segment.ParsePrecision(c.Pipeline.TimestampPrecision); err != nil {
		return fmt.Errorf("pipeline.timestamp_precision: %w", err)
	}
	if t := c.Pipeline.Threshold(); t < 0 || t > 2 {
		return fmt.Errorf("pipeline.distance_threshold must be within [0, 2]")
	}

	if c.Pipeline.DiarizationEnabled() {
		switch c.Embedding.Backend {
		case "", "onnx":
			c.Embedding.Backend = "onnx"
			if c.Embedding.ModelPath == "" {
				return fmt.Errorf("embedding.model_path is required for the onnx backend")
			}
		case "http":
			if c.Embedding.URL == "" {
				return fmt.Errorf("embedding.url is required for the http backend")
			}
		default:
			return fmt.Errorf("unknown embedding.backend %q", c.Embedding.Backend)
		}
	}

	if c.Summary.Enabled && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("summary.enabled requires GEMINI_API_KEYS")
	}

	c.setDefaults()
	return nil
}

func (c *Config) setDefaults() {
	if c.Whisper.Language == "" {
		c.Whisper.Language = "zh"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.Temperature == nil {
		c.Whisper.Temperature = float64Ptr(0.2)
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Pipeline.MinDuration == 0 {
		c.Pipeline.MinDuration = 1.5
	}
	if c.Pipeline.MaxGap == 0 {
		c.Pipeline.MaxGap = 1.0
	}
	if c.Pipeline.DistanceThreshold == nil {
		c.Pipeline.DistanceThreshold = float64Ptr(0.9)
	}
	if c.Pipeline.SpeakerPrefix == "" {
		c.Pipeline.SpeakerPrefix = "speaker"
	}
	if c.Pipeline.UnknownSpeaker == "" {
		c.Pipeline.UnknownSpeaker = "unknown speaker"
	}
	if c.Embedding.TimeoutSec == 0 {
		c.Embedding.TimeoutSec = 120
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summary.Prompt == "" {
		c.Summary.Prompt = DefaultPrompt
	}
	if c.Summary.MaxChunkSize == 0 {
		c.Summary.MaxChunkSize = 7000
	}
	if c.Summary.User == "" {
		c.Summary.User = "guest"
	}
	if c.Summary.Archive == "" {
		c.Summary.Archive = "summaries"
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
