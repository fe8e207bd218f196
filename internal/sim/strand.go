// Package sim provides the world serializer: a single-goroutine task
// executor through which every tick, autosave, and API mutation must pass,
// generalizing the teacher's internal/sim/loop.go fixed-timestep ticker
// from "drive one engine" to "execute arbitrary posted closures" (spec.md
// 4.I, 9).
package sim

import "context"

// Strand is a single-threaded logical execution context. All world-state
// operations are posted to it as closures and run one at a time, in the
// order they were posted, so no tick ever observes a partially applied API
// mutation and no API handler ever observes a partially applied tick.
type Strand struct {
	tasks chan func()
	done  chan struct{}
}

// NewStrand starts the strand's worker goroutine. queueDepth bounds how
// many pending tasks may be queued before Do/Post blocks its caller.
func NewStrand(queueDepth int) *Strand {
	if queueDepth <= 0 {
		queueDepth = 64
	}
	s := &Strand{
		tasks: make(chan func(), queueDepth),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Strand) run() {
	for task := range s.tasks {
		task()
	}
	close(s.done)
}

// Do posts fn and blocks until it has run, returning ctx.Err() if ctx is
// canceled before fn has finished; a fn already queued still runs later in
// that case. Use this from HTTP handlers that need a result before
// responding.
func (s *Strand) Do(ctx context.Context, fn func()) error {
	result := make(chan struct{})
	wrapped := func() {
		fn()
		close(result)
	}
	select {
	case s.tasks <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-result:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post enqueues fn without waiting for it to run. Used by the periodic
// tick/autosave drivers, which do not need a synchronous result.
func (s *Strand) Post(fn func()) {
	s.tasks <- fn
}

// Close stops accepting new periodic firings and drains every task already
// queued before returning, per spec.md 5's cancellation contract.
func (s *Strand) Close() {
	close(s.tasks)
	<-s.done
}
