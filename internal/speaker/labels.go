package speaker

import (
	"fmt"
	"strconv"
	"strings"
)

// Labels controls how registry labels are rendered into the transcript.
type Labels struct {
	Prefix  string `yaml:"speaker_prefix"`
	Unknown string `yaml:"unknown_speaker"`
}

// DefaultLabels renders "speaker N" and "unknown speaker".
func DefaultLabels() Labels {
	return Labels{Prefix: "speaker", Unknown: "unknown speaker"}
}

// Format renders a registry label. Non-positive ids render as Unknown.
func (l Labels) Format(id int) string {
	if id <= 0 {
		return l.Unknown
	}
	return fmt.Sprintf("%s %d", l.Prefix, id)
}

// Match reports whether s is a label produced by Format.
func (l Labels) Match(s string) bool {
	if s == l.Unknown {
		return true
	}
	rest, ok := strings.CutPrefix(s, l.Prefix+" ")
	if !ok || rest == "" {
		return false
	}
	n, err := strconv.Atoi(rest)
	return err == nil && n > 0
}
