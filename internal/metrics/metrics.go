// Package metrics exposes Prometheus instruments for transcription jobs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// JobsTotal counts finished jobs.
	// Labels: kind (transcribe/summarize), status (success/error kind)
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_jobs_total",
			Help: "Total number of jobs by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	// SegmentsTotal counts transcript segments by speaker outcome.
	// Labels: outcome (labeled/unknown/unlabeled)
	SegmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_segments_total",
			Help: "Total number of transcript segments by speaker attribution outcome",
		},
		[]string{"outcome"},
	)

	// SpeakersPerJob records how many distinct speakers each job found.
	SpeakersPerJob = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scribe_speakers_per_job",
			Help:    "Distinct speakers discovered per transcription job",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 20},
		},
	)

	// StageDuration records time spent per pipeline stage in seconds.
	// Labels: stage (transcode/transcribe/merge/cluster/serialize/summarize)
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scribe_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 900},
		},
		[]string{"stage"},
	)
)

// RecordJob records a finished job. status is "success" or an error kind.
func RecordJob(kind, status string) {
	JobsTotal.WithLabelValues(kind, status).Inc()
}

// RecordSegments adds n segments with the given outcome.
func RecordSegments(outcome string, n int) {
	if n > 0 {
		SegmentsTotal.WithLabelValues(outcome).Add(float64(n))
	}
}

// RecordSpeakers observes the speaker count of one job.
func RecordSpeakers(n int) {
	SpeakersPerJob.Observe(float64(n))
}

// RecordDuration records the duration of a stage in seconds.
func RecordDuration(stage string, seconds float64) {
	StageDuration.WithLabelValues(stage).Observe(seconds)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
