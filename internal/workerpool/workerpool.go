// Package workerpool dispatches short-lived jobs — one per accepted
// connection — across a fixed number of goroutines. It provides three
// variants selectable by configuration: a shared-queue pool of long-lived
// workers, a work-stealing pool backed by panjf2000/ants, and a naive
// goroutine-per-job pool used as a baseline. All three share the contract
// that a panicking job must never shrink the pool's live worker count.
package workerpool

import (
	"github.com/ignitedb/ignite/pkg/errors"
)

// Job is a zero-argument unit of work submitted to a Pool.
type Job func()

// Pool is the contract the server drives: spawn moves a job into the pool
// for execution on some worker. Pool makes no ordering promise between jobs
// and returns no per-job result.
type Pool interface {
	// Spawn submits job for execution. It may block if the pool's queue is
	// bounded and full.
	Spawn(job Job)
}

// Kind names a Pool variant, matching the server's --pool flag.
type Kind string

const (
	KindShared       Kind = "shared"
	KindWorkStealing Kind = "work-stealing"
	KindNaive        Kind = "naive"
)

// New constructs a Pool of the requested kind with n workers of parallelism.
func New(kind Kind, n int) (Pool, error) {
	if n <= 0 {
		return nil, errors.NewPoolInitError(nil, "worker count must be positive").
			WithKind(string(kind)).WithThreads(n)
	}

	switch kind {
	case KindShared, "":
		return NewSharedQueuePool(n), nil
	case KindWorkStealing:
		return NewWorkStealingPool(n)
	case KindNaive:
		return NewNaivePool(), nil
	default:
		return nil, errors.NewPoolInitError(nil, "unknown worker pool kind").
			WithKind(string(kind)).WithThreads(n)
	}
}
