package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// jobsTotal counts finished jobs by terminal status
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pptxdom_jobs_total",
		Help: "Finished edit jobs by terminal status",
	}, []string{"status"})

	// jobDuration tracks time from pickup to terminal status
	jobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pptxdom_job_duration_seconds",
		Help:    "Edit job processing time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	})

	// editsTotal counts individual edits by operation and result
	editsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pptxdom_edits_total",
		Help: "Applied edits by operation and result",
	}, []string{"op", "result"})

	// queueRejected counts submissions refused because the queue was full
	queueRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pptxdom_queue_rejected_total",
		Help: "Edit jobs rejected because the queue was full",
	})
)

// queueDepth is the number of jobs waiting for a worker
var queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "pptxdom_queue_depth",
	Help: "Edit jobs waiting for a worker",
})
