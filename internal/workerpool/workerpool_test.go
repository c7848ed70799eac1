package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositiveWorkerCount(t *testing.T) {
	_, err := New(KindShared, 0)
	require.Error(t, err)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind("bogus"), 4)
	require.Error(t, err)
}

func TestNewDefaultsEmptyKindToShared(t *testing.T) {
	p, err := New(Kind(""), 2)
	require.NoError(t, err)
	_, ok := p.(*SharedQueuePool)
	require.True(t, ok)
}

// survivesPanic submits a panicking job followed by a counting job and
// asserts the pool keeps processing work afterward — a panicking job must
// never leave the pool unable to run later jobs.
func survivesPanic(t *testing.T, pool Pool) {
	t.Helper()

	pool.Spawn(func() { panic("boom") })

	var count int64
	var wg sync.WaitGroup
	const jobs = 20
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		pool.Spawn(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool stalled after a panicking job")
	}

	require.Equal(t, int64(jobs), atomic.LoadInt64(&count))
}

func TestSharedQueuePoolSurvivesPanic(t *testing.T) {
	survivesPanic(t, NewSharedQueuePool(4))
}

func TestNaivePoolSurvivesPanic(t *testing.T) {
	survivesPanic(t, NewNaivePool())
}

func TestWorkStealingPoolSurvivesPanic(t *testing.T) {
	p, err := NewWorkStealingPool(4)
	require.NoError(t, err)
	survivesPanic(t, p)
}
