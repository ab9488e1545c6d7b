package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
	"github.com/nguyentantai21042004/meeting-scribe/internal/speaker"
	"github.com/nguyentantai21042004/meeting-scribe/internal/vtt"
)

func (p *implProcessor) Transcribe(ctx context.Context, name string, r io.Reader) (*Result, error) {
	jobID := uuid.NewString()
	ctx = logger.WithJobID(ctx, jobID)
	startTime := time.Now()

	p.logger.Info(ctx, "Starting transcription job: %s", name)

	res, err := p.transcribe(ctx, jobID, name, r)
	metrics.RecordJob("transcribe", status(err))
	if err != nil {
		p.logger.Error(ctx, "Transcription job failed: %v", err)
		return nil, err
	}

	p.logger.Info(ctx, "Transcription completed: %d segments, %d speakers, %d unknown (%s)",
		len(res.Segments), res.Speakers, res.Unknown, time.Since(startTime).Round(time.Millisecond))
	return res, nil
}

func (p *implProcessor) transcribe(ctx context.Context, jobID, name string, r io.Reader) (*Result, error) {
	if !IsSupported(name) {
		return nil, newJobError(KindInput, fmt.Sprintf("%q", filepath.Ext(name)), ErrUnsupportedFormat)
	}

	dir, err := p.newJobDir(jobID)
	if err != nil {
		return nil, newJobError(KindInput, "create job dir", err)
	}
	defer p.cleanupDir(ctx, dir)

	upload, err := p.stage(ctx, dir, name, r)
	if err != nil {
		return nil, err
	}

	wav := filepath.Join(dir, "audio.wav")
	stageStart := time.Now()
	if err := p.transcode(ctx, upload, wav); err != nil {
		return nil, err
	}
	p.cleanupTempFile(ctx, upload)
	metrics.RecordDuration("transcode", time.Since(stageStart).Seconds())

	stageStart = time.Now()
	segs, err := p.runtime.Transcriber.Transcribe(ctx, wav)
	if err != nil {
		return nil, newJobError(KindTranscription, p.runtime.Transcriber.Name(), err)
	}
	if len(segs) == 0 {
		return nil, newJobError(KindTranscription, name, ErrNoSegments)
	}
	metrics.RecordDuration("transcribe", time.Since(stageStart).Seconds())
	p.logger.Info(ctx, "Transcribed %d segments", len(segs))

	if p.cfg.Pipeline.EnableSegmentMerge {
		before := len(segs)
		segs = segment.Merge(segs, segment.MergeOptions{
			MinDuration: p.cfg.Pipeline.MinDuration,
			MaxGap:      p.cfg.Pipeline.MaxGap,
		})
		p.logger.Info(ctx, "Merged %d segments into %d", before, len(segs))
	}

	res := &Result{JobID: jobID}
	if p.diarize() {
		stageStart = time.Now()
		cr := p.clusterer.Assign(ctx, segs, p.embeddingSource(dir, wav))
		metrics.RecordDuration("cluster", time.Since(stageStart).Seconds())

		res.Segments = cr.Segments
		res.Speakers = cr.Registry.Len()
		res.Unknown = cr.Unknown
		metrics.RecordSpeakers(res.Speakers)
		metrics.RecordSegments("labeled", len(res.Segments)-res.Unknown)
		metrics.RecordSegments("unknown", res.Unknown)
	} else {
		res.Segments = segment.Unlabeled(segs)
		metrics.RecordSegments("unlabeled", len(res.Segments))
	}

	res.Document = vtt.Marshal(res.Segments, p.cfg.Pipeline.Precision())
	return res, nil
}

func (p *implProcessor) diarize() bool {
	return p.cfg.Pipeline.DiarizationEnabled() && p.runtime.Extractor != nil
}

// embeddingSource slices each segment out of wav and runs the extractor on
// the slice. Slices live in dir and are removed after use.
func (p *implProcessor) embeddingSource(dir, wav string) speaker.Source {
	return speaker.SourceFunc(func(ctx context.Context, index int, seg segment.Segment) (speaker.Embedding, error) {
		path := filepath.Join(dir, fmt.Sprintf("segment_%05d.wav", index))
		defer p.cleanupTempFile(ctx, path)

		if err := p.slice(ctx, wav, seg, path); err != nil {
			return nil, err
		}
		return p.runtime.Extractor.Extract(ctx, path)
	})
}

// readFile opens path for staging. Callers close the returned file.
func readFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newJobError(KindInput, "open input", err)
	}
	return f, nil
}
