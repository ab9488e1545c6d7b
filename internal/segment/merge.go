package segment

// MergeOptions controls when adjacent segments are fused.
type MergeOptions struct {
	// MinDuration in seconds: an accumulated segment shorter than this absorbs
	// the next one.
	MinDuration float64 `yaml:"min_duration"`
	// MaxGap in seconds: a segment starting less than MaxGap after the
	// accumulated end is absorbed.
	MaxGap float64 `yaml:"max_gap"`
}

// DefaultMergeOptions returns 1.5s minimum duration and 1.0s maximum gap.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{MinDuration: 1.5, MaxGap: 1.0}
}

// Merge folds segs left to right, fusing a segment into the running
// accumulator when the gap since the accumulator's end is below MaxGap or the
// accumulator itself is shorter than MinDuration. Fusion extends the end and
// joins text with a single space. The input is not modified.
func Merge(segs []Segment, opts MergeOptions) []Segment {
	if len(segs) == 0 {
		return []Segment{}
	}

	merged := make([]Segment, 0, len(segs))
	acc := segs[0]

	for _, cur := range segs[1:] {
		gap := cur.Start - acc.End
		if gap < opts.MaxGap || acc.Duration() < opts.MinDuration {
			acc.End = cur.End
			acc.Text += " " + cur.Text
			continue
		}
		merged = append(merged, acc)
		acc = cur
	}

	return append(merged, acc)
}
