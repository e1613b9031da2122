package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of periodic maintenance work, such as sweeping expired
// review sessions.
type Job interface {
	// Name identifies the job in log output.
	Name() string

	// Run executes the job. now is the UTC instant of this tick.
	Run(ctx context.Context, now time.Time) error
}

// JobFunc adapts a plain function to the Job interface.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context, now time.Time) error
}

// Name returns the job's name.
func (j JobFunc) Name() string { return j.JobName }

// Run invokes the wrapped function.
func (j JobFunc) Run(ctx context.Context, now time.Time) error { return j.Fn(ctx, now) }

// Runner executes registered jobs at a fixed interval until stopped.
// Jobs run sequentially on a single goroutine; a failing job is logged
// and retried on the next tick.
type Runner struct {
	interval   time.Duration
	jobs       []Job
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewRunner creates a Runner that fires every interval.
func NewRunner(interval time.Duration, logger *slog.Logger) *Runner {
	if interval <= 0 {
		// ALLOW-PANIC: Constructor enforcing valid configuration
		panic("interval must be positive for Runner")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		interval: interval,
		logger:   logger.With(slog.String("component", "maintenance_runner")),
	}
}

// Register adds a job to the runner. Must be called before Start.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches the tick loop. The loop exits when ctx is cancelled or
// Stop is called.
func (r *Runner) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancelFunc = cancel

	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop cancels the tick loop and waits for any in-flight job to finish.
func (r *Runner) Stop() {
	if r.cancelFunc != nil {
		r.cancelFunc()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("maintenance runner stopped")
			return
		case now := <-ticker.C:
			r.runJobs(ctx, now.UTC())
		}
	}
}

func (r *Runner) runJobs(ctx context.Context, now time.Time) {
	for _, job := range r.jobs {
		if err := job.Run(ctx, now); err != nil {
			r.logger.Error("maintenance job failed",
				slog.String("job", job.Name()),
				slog.String("error", err.Error()))
		}
	}
}
