package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
)

// ErrQueueFull is returned by Submit when the job queue has no capacity.
var ErrQueueFull = errors.New("job queue is full")

// cleanupInterval is how often expired jobs are swept from the store.
const cleanupInterval = 5 * time.Minute

// Orchestrator manages the asynchronous outline pipeline.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	proc  *Processor
	log   *slog.Logger
	cfg   config.Config

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, proc *Processor, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		proc:  proc,
		log:   log,
		cfg:   cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.proc, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetStatus(StatusFailed, "shutdown")
		return fmt.Errorf("pipeline stopped")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetFileData(nil)
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Processor returns the shared processor for synchronous requests.
func (o *Orchestrator) Processor() *Processor {
	return o.proc
}

// JobCount returns the number of jobs still held by the store.
func (o *Orchestrator) JobCount() int {
	return o.jobs.Len()
}
