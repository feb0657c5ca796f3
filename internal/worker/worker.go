// Package worker runs catalog conversion jobs on a fixed pool of goroutines.
package worker

import (
	"context"
	"sync"
)

// ProcessFunc handles one job. A returned error is passed to the pool's
// error handler and does not stop the other workers.
type ProcessFunc[J any] func(ctx context.Context, job J) error

// ErrorFunc receives the job and error of every failed ProcessFunc call.
type ErrorFunc[J any] func(job J, err error)

// Pool is a bounded set of workers draining a buffered job queue.
type Pool[J any] struct {
	numWorkers int
	jobs       chan J
	processor  ProcessFunc[J]
	onError    ErrorFunc[J]
	wg         sync.WaitGroup
}

// NewPool creates a pool. numWorkers below 1 is treated as 1. A nil onError
// discards failures.
func NewPool[J any](numWorkers, bufferSize int, processor ProcessFunc[J], onError ErrorFunc[J]) *Pool[J] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if onError == nil {
		onError = func(J, error) {}
	}
	return &Pool[J]{
		numWorkers: numWorkers,
		jobs:       make(chan J, bufferSize),
		processor:  processor,
		onError:    onError,
	}
}

// Start launches the workers. They exit when ctx is cancelled or the queue
// is closed by Stop.
func (p *Pool[J]) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[J]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.processor(ctx, job); err != nil {
				p.onError(job, err)
			}
		}
	}
}

// Submit queues a job, blocking while the buffer is full. It returns false
// if ctx is cancelled first.
func (p *Pool[J]) Submit(ctx context.Context, job J) bool {
	select {
	case <-ctx.Done():
		return false
	case p.jobs <- job:
		return true
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool[J]) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Run processes every job with numWorkers workers and returns once all of
// them have been handled or ctx is cancelled.
func Run[J any](ctx context.Context, numWorkers int, jobs []J, processor ProcessFunc[J], onError ErrorFunc[J]) {
	p := NewPool(numWorkers, len(jobs), processor, onError)
	p.Start(ctx)
	for _, j := range jobs {
		if !p.Submit(ctx, j) {
			break
		}
	}
	p.Stop()
}
