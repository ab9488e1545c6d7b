package processor

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/archive"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

type implProcessor struct {
	cfg        *config.Config
	runtime    *Runtime
	executor   executor.Executor
	clusterer  speaker.Clusterer
	labels     speaker.Labels
	summarizer summarizer.Summarizer
	archive    *archive.Archive
	logger     logger.Logger
}

// New creates a Processor. sum may be nil, in which case Summarize fails with
// ErrNoSummarizer.
func New(cfg *config.Config, rt *Runtime, exec executor.Executor, sum summarizer.Summarizer, log logger.Logger) Processor {
	labels := speaker.Labels{
		Prefix:  cfg.Pipeline.SpeakerPrefix,
		Unknown: cfg.Pipeline.UnknownSpeaker,
	}
	def := speaker.DefaultLabels()
	if labels.Prefix == "" {
		labels.Prefix = def.Prefix
	}
	if labels.Unknown == "" {
		labels.Unknown = def.Unknown
	}
	return &implProcessor{
		cfg:        cfg,
		runtime:    rt,
		executor:   exec,
		clusterer:  speaker.New(cfg.Pipeline.Threshold(), labels, log),
		labels:     labels,
		summarizer: sum,
		archive:    archive.New(cfg.Summary.Archive),
		logger:     log,
	}
}
