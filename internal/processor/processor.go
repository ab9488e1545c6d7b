package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/internal/vtt"
)

// Process handles one file dropped into the input folder.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	name := baseName(path)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting processing: %s", path)
	p.logger.Info(ctx, "========================================")

	var err error
	if strings.EqualFold(filepath.Ext(path), ".vtt") {
		err = p.processTranscript(ctx, path, name)
	} else {
		err = p.processRecording(ctx, path, name)
	}
	if err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move input to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")
	return nil
}

func (p *implProcessor) processRecording(ctx context.Context, path, name string) error {
	f, err := readFile(path)
	if err != nil {
		return err
	}
	res, err := p.Transcribe(ctx, filepath.Base(path), f)
	f.Close()
	if err != nil {
		return err
	}

	vttPath, err := p.writeOutput(name+".vtt", res.Document)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Output transcript: %s", vttPath)

	if err := p.writeTranscriptDocx(res.Document, name); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
	}

	if !p.cfg.Summary.Enabled {
		return nil
	}

	src, err := readFile(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = p.Summarize(ctx, SummaryRequest{
		Name:       name,
		Transcript: res.Document,
		Source:     src,
		SourceName: filepath.Base(path),
	})
	return err
}

func (p *implProcessor) processTranscript(ctx context.Context, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newJobError(KindInput, "read transcript", err)
	}
	if _, err := vtt.Parse(data, nil); err != nil {
		return newJobError(KindInput, filepath.Base(path), err)
	}

	_, err = p.Summarize(ctx, SummaryRequest{
		Name:       name,
		Transcript: data,
		SourceName: filepath.Base(path),
	})
	return err
}

func (p *implProcessor) writeTranscriptDocx(doc []byte, name string) error {
	cues, err := vtt.Parse(doc, p.labels.Match)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return summarizer.WriteTranscript(name, cues, filepath.Join(p.cfg.Paths.Output, name+"_transcript.docx"))
}
