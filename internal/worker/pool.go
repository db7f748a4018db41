// Package worker provides a small fan-out/fan-in pool used to run the
// per-request intelligence fetches concurrently.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is a named unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context) (any, error)
}

// JobResult pairs a job's name with its outcome.
type JobResult struct {
	Name  string
	Value any
	Err   error
}

// Pool runs jobs across a fixed number of goroutines.
type Pool struct {
	size   int
	logger *slog.Logger
}

// NewPool creates a pool of the given size. Sizes below 1 are clamped to 1.
func NewPool(size int, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size, logger: logger}
}

// Process consumes jobs from the channel and emits one JobResult per job.
// The result channel is closed once every worker has drained. Workers stop
// early when ctx is cancelled; jobs still queued at that point produce no
// result.
func (p *Pool) Process(ctx context.Context, jobs <-chan Job) <-chan JobResult {
	results := make(chan JobResult)
	var wg sync.WaitGroup

	for range p.size {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-jobs:
					if !ok {
						return
					}
					value, err := job.Run(ctx)
					select {
					case <-ctx.Done():
						return
					case results <- JobResult{Name: job.Name, Value: value, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
