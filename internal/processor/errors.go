package processor

import (
	"errors"
	"fmt"
)

// Kind classifies job-level failures.
type Kind string

const (
	KindInput         Kind = "input"
	KindTranscode     Kind = "transcode"
	KindTranscription Kind = "transcription"
	KindOutput        Kind = "output"
	KindSummary       Kind = "summary"
)

var (
	ErrEmptyInput        = errors.New("upload is empty")
	ErrUnsupportedFormat = errors.New("unsupported file extension")
	ErrNoSegments        = errors.New("transcription produced no segments")
	ErrNoSummarizer      = errors.New("summarizer not configured")
)

// JobError is returned by every job operation that fails.
type JobError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *JobError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Detail)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

func newJobError(kind Kind, detail string, err error) *JobError {
	return &JobError{Kind: kind, Detail: detail, Err: err}
}

// KindOf returns the kind of a JobError in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var je *JobError
	if errors.As(err, &je) {
		return je.Kind
	}
	return ""
}

// status is the metrics label for a job outcome.
func status(err error) string {
	if err == nil {
		return "success"
	}
	if k := KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}
