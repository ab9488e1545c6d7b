// Package segment holds the time-coded speech segments that flow through the
// transcript pipeline, their timestamp formatting, and the short-segment merger.
package segment

// MinSpan is the length in seconds given to a segment whose end does not
// come after its start.
const MinSpan = 0.5

// Segment is a time-bounded span of transcribed speech. Start and End are
// seconds from the beginning of the recording.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns End - Start without any correction.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Normalize returns a copy of s whose End is strictly after Start.
// Calling it on an already normalized segment is a no-op.
func (s Segment) Normalize() Segment {
	if s.Start >= s.End {
		s.End = s.Start + MinSpan
	}
	return s
}

// Labeled is a segment attributed to a speaker.
type Labeled struct {
	Segment

	// Speaker is the rendered label ("speaker 2", "unknown speaker"), empty when
	// diarization was not requested.
	Speaker string `json:"speaker,omitempty"`

	// SpeakerID is the 1-based registry label, 0 when the speaker is unknown or
	// diarization was not requested.
	SpeakerID int `json:"speaker_id,omitempty"`

	// Err records why the speaker could not be identified.
	Err error `json:"-"`
}

// Unlabeled wraps segments without attributing any speaker.
func Unlabeled(segs []Segment) []Labeled {
	out := make([]Labeled, len(segs))
	for i, s := range segs {
		out[i] = Labeled{Segment: s.Normalize()}
	}
	return out
}
