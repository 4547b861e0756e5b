package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/pptxdom/internal/deck"
)

// Worker processes a single edit job.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process opens the job's deck, applies its edits in order and saves the
// result. An edit that fails is recorded and the rest still run; the job
// ends partial when some but not all edits succeeded.
func (w *Worker) Process(ctx context.Context, job *Job) {
	start := time.Now()
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	status := w.process(ctx, job, log)
	job.SetStatus(status, "done")
	jobsTotal.WithLabelValues(string(status)).Inc()
	jobDuration.Observe(time.Since(start).Seconds())
	log.Info("job finished", "status", status, "duration", time.Since(start))
}

func (w *Worker) process(ctx context.Context, job *Job, log *slog.Logger) JobStatus {
	// Phase 1: Open
	job.SetStatus(StatusOpening, "opening")
	d, err := deck.OpenBytes(job.FileData(), deck.WithLogger(log))
	if err != nil {
		log.Error("open failed", "error", err)
		job.AddError(fmt.Sprintf("open: %s", err))
		return StatusFailed
	}

	// Phase 2: Apply
	job.SetStatus(StatusApplying, "applying")
	edits := job.Edits()
	applied := 0
	for i, e := range edits {
		if err := ctx.Err(); err != nil {
			job.AddError(fmt.Sprintf("cancelled before edit %d: %s", i, err))
			return StatusFailed
		}
		if err := d.Apply(e); err != nil {
			log.Warn("edit failed", "edit", i, "op", e.Op, "error", err)
			job.AddError(fmt.Sprintf("edit %d (%s): %s", i, e.Op, err))
			editsTotal.WithLabelValues(string(e.Op), "error").Inc()
			continue
		}
		applied++
		job.IncrEditsApplied()
		editsTotal.WithLabelValues(string(e.Op), "ok").Inc()
	}
	log.Info("edits applied", "applied", applied, "total", len(edits))

	if applied == 0 && len(edits) > 0 {
		return StatusFailed
	}

	// Phase 3: Save
	job.SetStatus(StatusSaving, "saving")
	b, err := d.Bytes()
	if err != nil {
		log.Error("save failed", "error", err)
		job.AddError(fmt.Sprintf("save: %s", err))
		return StatusFailed
	}
	job.SetResult(b)

	if applied < len(edits) {
		return StatusPartial
	}
	return StatusCompleted
}
