package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job is one maze to solve.
type Job struct {
	Name string
	Text string
}

// Outcome is the solve result of a Job.
type Outcome struct {
	Name     string
	Result   Result
	Duration time.Duration
}

// SolveAll solves jobs concurrently, at most workers at a time. Each search
// runs single-threaded on its own state. Outcomes keep the job order; the
// first failure cancels jobs that have not started yet.
func SolveAll(ctx context.Context, cache *SolveCache, jobs []Job, strategy Strategy, opts Options, workers int) ([]Outcome, error) {
	if cache == nil {
		cache = NewSolveCache()
	}
	if workers <= 0 {
		workers = 1
	}
	out := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			r, err := cache.SolveText(job.Text, strategy, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			out[i] = Outcome{Name: job.Name, Result: r, Duration: time.Since(began)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
