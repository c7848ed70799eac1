package workerpool

import "go.uber.org/zap"

// SharedQueuePool is a single multi-producer/multi-consumer queue fed by
// Spawn and drained by n long-lived goroutines. If a job panics, the worker
// that ran it recovers, logs, and spawns its own replacement before exiting
// — the pool's live worker count never drops below n.
type SharedQueuePool struct {
	jobs chan Job
	log  *zap.SugaredLogger
}

// NewSharedQueuePool starts n workers draining a shared job channel.
func NewSharedQueuePool(n int) *SharedQueuePool {
	return NewSharedQueuePoolWithLogger(n, zap.NewNop().Sugar())
}

// NewSharedQueuePoolWithLogger is NewSharedQueuePool with an explicit
// logger for the panic-recovery diagnostics.
func NewSharedQueuePoolWithLogger(n int, log *zap.SugaredLogger) *SharedQueuePool {
	p := &SharedQueuePool{jobs: make(chan Job, n*4), log: log}
	for i := 0; i < n; i++ {
		p.startWorker()
	}
	return p
}

// Spawn submits job to the shared queue, blocking if it is full.
func (p *SharedQueuePool) Spawn(job Job) {
	p.jobs <- job
}

// startWorker launches one worker goroutine. On panic it logs and starts its
// own replacement before returning, so the pool's worker count is restored
// before the failing worker actually exits.
func (p *SharedQueuePool) startWorker() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.log.Errorw("worker recovered from panic, respawning", "panic", r)
				p.startWorker()
			}
		}()

		for job := range p.jobs {
			job()
		}
	}()
}
