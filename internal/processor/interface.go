// Package processor runs transcription and summary jobs end to end: staging,
// transcoding, speech recognition, optional merging, speaker attribution,
// WEBVTT serialization and summarization.
package processor

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/meeting-scribe/internal/archive"
	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// Processor defines the job operations.
type Processor interface {
	// Transcribe turns an uploaded recording into a speaker-attributed WEBVTT
	// document. name is the upload's file name; its extension selects the
	// input format.
	Transcribe(ctx context.Context, name string, r io.Reader) (*Result, error)
	// Summarize summarizes a WEBVTT transcript and writes the summary
	// documents and archive entry.
	Summarize(ctx context.Context, req SummaryRequest) (*Summary, error)
	// Process handles one file from the input directory: recordings are
	// transcribed (and summarized when enabled), .vtt files are summarized.
	Process(ctx context.Context, path string) error
}

// Result is the outcome of a transcription job.
type Result struct {
	JobID    string
	Segments []segment.Labeled
	// Speakers is the number of distinct speakers found.
	Speakers int
	// Document is the serialized WEBVTT transcript.
	Document []byte
	// Unknown counts segments labeled as the unknown speaker.
	Unknown int
}

// SummaryRequest describes one summary job.
type SummaryRequest struct {
	// Name is the base name of the written documents.
	Name       string
	Transcript []byte
	// Prompt overrides the configured prompt when set.
	Prompt string
	// User selects the archive directory; empty uses the configured user.
	User string
	// Source is archived next to the summary. When nil the transcript is
	// archived instead.
	Source     io.Reader
	SourceName string
}

// Summary is the outcome of a summary job.
type Summary struct {
	JobID    string
	Text     string
	Markdown string
	Docx     string
	Archive  *archive.Entry
}
