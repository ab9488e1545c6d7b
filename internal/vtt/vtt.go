// Package vtt renders speaker-labelled segments as a WEBVTT document and
// reads such documents back.
package vtt

import (
	"bytes"
	"io"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// Header is the first line of every document.
const Header = "WEBVTT"

// Marshal renders segs as a WEBVTT document. Each cue is
//
//	start --> end
//	<speaker>: <text on one line>
//
// with one blank line between cues. Intervals are normalized again here, so
// the output never carries end <= start. A segment without a speaker is
// rendered without prefix. The same input always yields the same bytes.
func Marshal(segs []segment.Labeled, p segment.Precision) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = Write(&buf, segs, p)
	return buf.Bytes()
}

// Write streams the document produced by Marshal to w.
func Write(w io.Writer, segs []segment.Labeled, p segment.Precision) error {
	if _, err := io.WriteString(w, Header+"\n"); err != nil {
		return err
	}
	for _, s := range segs {
		if _, err := io.WriteString(w, "\n"+segment.FormatSpan(s.Segment, p)+"\n"+cueText(s)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// cueText collapses runs of whitespace, line breaks included, so a cue body
// is always a single line.
func cueText(s segment.Labeled) string {
	text := strings.Join(strings.Fields(s.Text), " ")
	if s.Speaker == "" {
		return text
	}
	return s.Speaker + ": " + text
}
