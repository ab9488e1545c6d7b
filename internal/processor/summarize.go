package processor

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/internal/vtt"
)

func (p *implProcessor) Summarize(ctx context.Context, req SummaryRequest) (*Summary, error) {
	jobID := uuid.NewString()
	ctx = logger.WithJobID(ctx, jobID)

	p.logger.Info(ctx, "Starting summary job: %s", req.Name)

	sum, err := p.summarize(ctx, req)
	metrics.RecordJob("summarize", status(err))
	if err != nil {
		p.logger.Error(ctx, "Summary job failed: %v", err)
		return nil, err
	}

	sum.JobID = jobID
	p.logger.Info(ctx, "Summary written: %s", sum.Markdown)
	return sum, nil
}

func (p *implProcessor) summarize(ctx context.Context, req SummaryRequest) (*Summary, error) {
	if p.summarizer == nil {
		return nil, newJobError(KindSummary, "summarize", ErrNoSummarizer)
	}

	text := vtt.PlainText(req.Transcript)
	if strings.TrimSpace(text) == "" {
		return nil, newJobError(KindInput, req.Name, vtt.ErrEmptyTranscript)
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = p.cfg.Summary.Prompt
	}

	start := time.Now()
	out, err := p.summarizer.Summarize(ctx, text, prompt)
	if err != nil {
		return nil, newJobError(KindSummary, "summarize", err)
	}
	metrics.RecordDuration("summarize", time.Since(start).Seconds())

	name := baseName(req.Name)
	sum := &Summary{Text: out}

	if sum.Markdown, err = p.writeOutput(name+"_summary.md", []byte(out)); err != nil {
		return nil, err
	}

	sum.Docx = filepath.Join(p.cfg.Paths.Output, name+"_summary.docx")
	if err := summarizer.WriteSummary(name, out, sum.Docx); err != nil {
		return nil, newJobError(KindOutput, "write summary docx", err)
	}

	source, sourceName := req.Source, req.SourceName
	if source == nil {
		source, sourceName = bytes.NewReader(req.Transcript), name+".vtt"
	}

	user := req.User
	if user == "" {
		user = p.cfg.Summary.User
	}
	if sum.Archive, err = p.archive.Save(user, out, prompt, sourceName, source); err != nil {
		return nil, newJobError(KindOutput, "archive summary", err)
	}
	return sum, nil
}

// baseName strips directories and the extension from name.
func baseName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "transcript"
	}
	return base
}
