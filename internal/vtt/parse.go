package vtt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

var (
	// ErrMissingHeader is returned by Parse when the document does not start
	// with WEBVTT.
	ErrMissingHeader = errors.New("missing WEBVTT header")
	// ErrEmptyTranscript is returned when a document holds no text.
	ErrEmptyTranscript = errors.New("transcript has no text")
)

const arrow = "-->"

// Cue is one timed block read back from a document.
type Cue struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Parse reads a WEBVTT document. isSpeaker decides whether the text before
// the first ": " of a cue is a speaker label; nil disables speaker detection.
// Multi-line cue text is joined with "\n". NOTE, STYLE and REGION blocks and
// cue identifiers are skipped.
func Parse(data []byte, isSpeaker func(string) bool) ([]Cue, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() || !strings.HasPrefix(strings.TrimPrefix(sc.Text(), "\ufeff"), Header) {
		return nil, ErrMissingHeader
	}

	var (
		cues  []Cue
		cur   *Cue
		lines []string
		skip  bool
	)
	flush := func() {
		if cur != nil {
			cur.Text = strings.Join(lines, "\n")
			if isSpeaker != nil {
				if label, rest, ok := strings.Cut(cur.Text, ": "); ok && isSpeaker(label) {
					cur.Speaker, cur.Text = label, rest
				}
			}
			cues = append(cues, *cur)
		}
		cur, lines, skip = nil, nil, false
	}

	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
		case skip:
		case cur == nil && strings.Contains(trimmed, arrow):
			start, end, err := parseTiming(trimmed)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur = &Cue{Start: start, End: end}
		case cur == nil && isMetaBlock(trimmed):
			skip = true
		case cur == nil:
			// cue identifier
		default:
			lines = append(lines, trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	flush()

	return cues, nil
}

func isMetaBlock(line string) bool {
	for _, kw := range []string{"NOTE", "STYLE", "REGION"} {
		if line == kw || strings.HasPrefix(line, kw+" ") {
			return true
		}
	}
	return false
}

func parseTiming(line string) (float64, float64, error) {
	left, right, _ := strings.Cut(line, arrow)
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("timing line %q has no end time", line)
	}
	start, err := segment.ParseTimestamp(left)
	if err != nil {
		return 0, 0, err
	}
	end, err := segment.ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// PlainText strips the header and timing lines and joins the remaining
// non-empty lines with a single space. Speaker prefixes are kept so the
// summarizer still sees who said what.
func PlainText(data []byte) string {
	var parts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, arrow) || strings.HasPrefix(strings.TrimPrefix(line, "\ufeff"), Header) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
