package whisper

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

type implCLI struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// NewCLI creates a Transcriber backed by the whisper.cpp binary.
func NewCLI(opts Options, exec executor.Executor, log logger.Logger) Transcriber {
	if opts.Language == "" {
		opts.Language = "zh"
	}
	if opts.Threads <= 0 {
		opts.Threads = 8
	}
	return &implCLI{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
