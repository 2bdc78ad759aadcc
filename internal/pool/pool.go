// Package pool runs keyed tasks on a fixed number of workers.
//
// Tasks are queued without bound and dispatched in submission order to at
// most Size workers. Each key may be submitted once. A closed pool can be
// waited on until every outstanding task has finished, or terminated, in
// which case queued tasks are dropped and in-flight tasks are no longer
// waited for.
package pool

import (
	"context"
	"errors"
	"runtime"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kubescape/workerpool"
)

var (
	// ErrClosed is returned when submitting to a closed or terminated pool.
	ErrClosed = errors.New("pool is closed")
	// ErrDuplicate is returned when a key has already been submitted.
	ErrDuplicate = errors.New("task already submitted")
)

// Pool dispatches tasks producing results of type R.
type Pool[R any] struct {
	workers *workerpool.WorkerPool
	size    int

	ctx    context.Context //nolint:containedctx // Cancellation token shared by all tasks
	cancel context.CancelFunc

	submitted   mapset.Set[string]
	outstanding mapset.Set[string]

	mu      sync.Mutex // Guards closed and drained
	closed  bool
	drained chan struct{}
	once    sync.Once
}

// New creates a pool running at most size tasks concurrently.
// A size of zero or less uses the number of available CPUs.
func New[R any](ctx context.Context, size int) *Pool[R] {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	size = max(size, 1)

	ctx, cancel := context.WithCancel(ctx)

	return &Pool[R]{
		workers:     workerpool.New(size),
		size:        size,
		ctx:         ctx,
		cancel:      cancel,
		submitted:   mapset.NewSet[string](),
		outstanding: mapset.NewSet[string](),
		drained:     make(chan struct{}),
	}
}

// Size returns the maximum number of concurrently running tasks.
func (p *Pool[R]) Size() int {
	return p.size
}

// Outstanding returns the number of submitted tasks that have not completed.
func (p *Pool[R]) Outstanding() int {
	return p.outstanding.Cardinality()
}

// Submit enqueues work under key. done receives the result of work, from the
// worker goroutine, once work returns. Neither is called if the pool is
// terminated before the task starts, and done is skipped if it is terminated
// while work runs.
func (p *Pool[R]) Submit(key string, work func(context.Context) R, done func(R)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.ctx.Err() != nil {
		return ErrClosed
	}

	if !p.submitted.Add(key) {
		return ErrDuplicate
	}

	p.outstanding.Add(key)

	p.workers.Submit(func() {
		defer p.complete(key)

		if p.ctx.Err() != nil {
			return
		}

		result := work(p.ctx)

		if p.ctx.Err() != nil {
			return
		}

		if done != nil {
			done(result)
		}
	}, key)

	return nil
}

// Close stops accepting submissions. Tasks already queued still run.
func (p *Pool[R]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	if p.outstanding.Cardinality() == 0 {
		p.signalDrained()
	}
}

// Wait blocks until the pool is closed and all outstanding tasks completed,
// or until the pool is terminated. After a normal drain the worker
// goroutines are released.
func (p *Pool[R]) Wait() {
	select {
	case <-p.drained:
		p.workers.StopWait()
		p.cancel()
	case <-p.ctx.Done():
	}
}

// Terminate cancels every task, drops queued tasks and returns without
// waiting for in-flight tasks to notice.
func (p *Pool[R]) Terminate() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()

	go p.workers.Stop()
}

// complete removes key from the outstanding set and signals the drain once
// the set is empty on a closed pool.
func (p *Pool[R]) complete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.outstanding.Remove(key)

	if p.closed && p.outstanding.Cardinality() == 0 {
		p.signalDrained()
	}
}

func (p *Pool[R]) signalDrained() {
	p.once.Do(func() { close(p.drained) })
}
