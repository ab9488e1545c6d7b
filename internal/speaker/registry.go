package speaker

import (
	"errors"
	"slices"
)

// DefaultThreshold is the cosine distance below which a segment is attributed
// to an existing speaker.
const DefaultThreshold = 0.9

var errEmptyEmbedding = errors.New("empty embedding")

// Speaker is one registry entry. Exemplar is the embedding of the first
// segment attributed to the speaker and never changes afterwards.
type Speaker struct {
	Label    int
	Exemplar Embedding
}

// Registry holds the speakers discovered during one job. Labels are handed
// out in creation order starting at 1; entries are never merged or split.
// A Registry is not safe for concurrent use.
type Registry struct {
	threshold float64
	speakers  []Speaker
}

// NewRegistry creates an empty registry. A negative threshold falls back to
// DefaultThreshold. Zero is kept: every embedding then starts a new speaker.
func NewRegistry(threshold float64) *Registry {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Registry{threshold: threshold}
}

// Assign returns the label for e along with the distance to the nearest
// exemplar (0 for a newly created speaker when the registry was empty).
// The nearest exemplar wins when its distance is strictly below the
// threshold; ties go to the earliest speaker. Otherwise a new speaker is
// created with e as its exemplar.
func (r *Registry) Assign(e Embedding) (label int, distance float64, err error) {
	if len(e) == 0 {
		return 0, 0, errEmptyEmbedding
	}
	if len(r.speakers) == 0 {
		return r.add(e), 0, nil
	}

	best := -1
	var bestDist float64
	for i, s := range r.speakers {
		d, err := CosineDistance(e, s.Exemplar)
		if err != nil {
			return 0, 0, err
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if bestDist < r.threshold {
		return r.speakers[best].Label, bestDist, nil
	}
	return r.add(e), bestDist, nil
}

func (r *Registry) add(e Embedding) int {
	label := len(r.speakers) + 1
	r.speakers = append(r.speakers, Speaker{Label: label, Exemplar: slices.Clone(e)})
	return label
}

// Len returns the number of known speakers.
func (r *Registry) Len() int {
	return len(r.speakers)
}

// Threshold returns the distance threshold in use.
func (r *Registry) Threshold() float64 {
	return r.threshold
}

// Speakers returns a copy of the registry entries in label order.
func (r *Registry) Speakers() []Speaker {
	out := make([]Speaker, len(r.speakers))
	for i, s := range r.speakers {
		out[i] = Speaker{Label: s.Label, Exemplar: slices.Clone(s.Exemplar)}
	}
	return out
}
