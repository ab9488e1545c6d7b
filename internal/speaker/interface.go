// Package speaker attributes transcript segments to speakers with an online,
// nearest-exemplar clustering over voice embeddings.
package speaker

import (
	"context"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// Source yields the embedding for one segment. index is the segment's
// position in the job. Implementations may fail per segment.
type Source interface {
	Embedding(ctx context.Context, index int, seg segment.Segment) (Embedding, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, index int, seg segment.Segment) (Embedding, error)

// Embedding calls f.
func (f SourceFunc) Embedding(ctx context.Context, index int, seg segment.Segment) (Embedding, error) {
	return f(ctx, index, seg)
}

// Clusterer labels segments in order using only previously seen segments.
type Clusterer interface {
	Assign(ctx context.Context, segs []segment.Segment, src Source) Result
}

// Result is the outcome of one clustering run.
type Result struct {
	Segments []segment.Labeled
	Registry *Registry
	// Unknown counts segments whose embedding could not be obtained.
	Unknown int
}
