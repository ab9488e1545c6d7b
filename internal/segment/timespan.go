package segment

import (
	"fmt"
	"math"
	"strings"
)

// Precision selects the resolution of rendered timestamps.
type Precision int

const (
	// Seconds renders HH:MM:SS.
	Seconds Precision = iota
	// Milliseconds renders HH:MM:SS.mmm.
	Milliseconds
)

func (p Precision) String() string {
	switch p {
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision maps a config value to a Precision. Empty means Seconds.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seconds", "s":
		return Seconds, nil
	case "milliseconds", "ms":
		return Milliseconds, nil
	default:
		return Seconds, fmt.Errorf("unknown timestamp precision %q", s)
	}
}

// FormatTimestamp renders seconds as HH:MM:SS or HH:MM:SS.mmm.
// The value is first rounded to whole milliseconds so both precisions agree
// on the seconds field. Negative input renders as zero.
func FormatTimestamp(seconds float64, p Precision) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	ms := total % 1000
	secs := total / 1000
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	if p == Milliseconds {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseTimestamp reads HH:MM:SS, HH:MM:SS.mmm, HH:MM:SS,mmm or MM:SS.mmm back
// into seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	var h, m int
	var sec float64
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
			return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
		}
		parts = parts[1:]
	}
	if _, err := fmt.Sscanf(parts[0], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%g", &sec); err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	return float64(h*3600+m*60) + sec, nil
}

// FormatSpan renders "start --> end" after normalizing the interval.
func FormatSpan(s Segment, p Precision) string {
	s = s.Normalize()
	return FormatTimestamp(s.Start, p) + " --> " + FormatTimestamp(s.End, p)
}
