package speaker

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

type implClusterer struct {
	threshold float64
	labels    Labels
	logger    logger.Logger
}

// New creates a Clusterer. A non-positive threshold uses DefaultThreshold and
// empty label fields fall back to DefaultLabels.
func New(threshold float64, labels Labels, log logger.Logger) Clusterer {
	def := DefaultLabels()
	if labels.Prefix == "" {
		labels.Prefix = def.Prefix
	}
	if labels.Unknown == "" {
		labels.Unknown = def.Unknown
	}
	return &implClusterer{
		threshold: threshold,
		labels:    labels,
		logger:    log,
	}
}
