package workerpool

import (
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/ignitedb/ignite/pkg/errors"
)

// WorkStealingPool is a general-purpose pool of fixed parallelism backed by
// panjf2000/ants. ants recovers a panicking task internally and keeps its
// goroutine count steady, which is exactly the panic-survival contract every
// pool variant must uphold.
type WorkStealingPool struct {
	pool *ants.Pool
}

// NewWorkStealingPool constructs a work-stealing pool with n goroutines of
// parallelism.
func NewWorkStealingPool(n int) (*WorkStealingPool, error) {
	return NewWorkStealingPoolWithLogger(n, zap.NewNop().Sugar())
}

// NewWorkStealingPoolWithLogger is NewWorkStealingPool with an explicit
// logger for ants' panic handler.
func NewWorkStealingPoolWithLogger(n int, log *zap.SugaredLogger) (*WorkStealingPool, error) {
	pool, err := ants.NewPool(n,
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(r any) {
			log.Errorw("work-stealing pool recovered from panic", "panic", r)
		}),
	)
	if err != nil {
		return nil, errors.NewPoolInitError(err, "failed to construct work-stealing pool").
			WithKind(string(KindWorkStealing)).WithThreads(n)
	}

	return &WorkStealingPool{pool: pool}, nil
}

// Spawn submits job to the pool, blocking until a worker is free.
func (p *WorkStealingPool) Spawn(job Job) {
	// ants.Pool.Submit only errors when the pool is closed or overloaded in
	// nonblocking mode, neither of which this pool is configured for.
	_ = p.pool.Submit(job)
}
