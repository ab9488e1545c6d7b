package speaker

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// Assign walks segs in order. Each segment's interval is normalized before the
// embedding is requested. A failed embedding labels that one segment as
// unknown and processing continues.
func (c *implClusterer) Assign(ctx context.Context, segs []segment.Segment, src Source) Result {
	reg := NewRegistry(c.threshold)
	out := make([]segment.Labeled, len(segs))
	unknown := 0

	for i, raw := range segs {
		seg := raw.Normalize()
		out[i] = segment.Labeled{Segment: seg}

		id, dist, err := c.identify(ctx, reg, i, seg, src)
		if err != nil {
			c.logger.Warn(ctx, "Speaker identification failed for segment %d (%s): %v",
				i+1, segment.FormatSpan(seg, segment.Milliseconds), err)
			out[i].Speaker = c.labels.Unknown
			out[i].Err = err
			unknown++
			continue
		}

		out[i].SpeakerID = id
		out[i].Speaker = c.labels.Format(id)
		c.logger.Debug(ctx, "Segment %d -> %s (distance %.4f, %d known)", i+1, out[i].Speaker, dist, reg.Len())
	}

	return Result{Segments: out, Registry: reg, Unknown: unknown}
}

func (c *implClusterer) identify(ctx context.Context, reg *Registry, i int, seg segment.Segment, src Source) (int, float64, error) {
	emb, err := src.Embedding(ctx, i, seg)
	if err != nil {
		return 0, 0, fmt.Errorf("embedding: %w", err)
	}
	return reg.Assign(emb)
}
