package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

// Worker processes a single outline job.
type Worker struct {
	proc *Processor
	log  *slog.Logger
}

func NewWorker(proc *Processor, log *slog.Logger) *Worker {
	return &Worker{proc: proc, log: log}
}

// Process runs extraction and inference for a job. Failures are recorded on
// the job and never affect other jobs.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	job.SetStatus(StatusExtracting, "extracting")
	out, err := w.proc.Process(ctx, job.FileData(), job.Filename, job.Config())
	if err != nil {
		log.Error("outline failed", "error", err)
		job.AddError(fmt.Sprintf("process: %s", err))
		job.SetFileData(nil)
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	job.SetResult(out.Outline, out.Fragments)
	job.SetStatus(StatusCompleted, "done")
	log.Info("outline complete",
		"fragments", out.Fragments,
		"headings", len(out.Outline.Outline),
		"duration_ms", out.Duration.Milliseconds(),
	)
}
