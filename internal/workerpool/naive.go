package workerpool

// NaivePool spawns one goroutine per job, with no reuse and no bound. It
// exists for baseline comparison against the shared-queue and work-stealing
// variants, not for production use.
type NaivePool struct{}

// NewNaivePool constructs a NaivePool.
func NewNaivePool() *NaivePool {
	return &NaivePool{}
}

// Spawn launches job on its own goroutine, recovering a panic so one bad job
// can't take the whole process down with it. There is no long-lived worker
// to replace here — each job is its own disposable goroutine — so the
// panic-survival contract is satisfied trivially.
func (p *NaivePool) Spawn(job Job) {
	go func() {
		defer func() { recover() }()
		job()
	}()
}
