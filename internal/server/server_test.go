package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ignitedb/ignite/internal/client"
	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/internal/workerpool"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/options"
)

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.Addr = "127.0.0.1:0"

	eng, err := engine.Open(context.Background(), &engine.Config{
		Dir: opts.DataDir, Options: &opts, Logger: zap.NewNop().Sugar(),
	})
	require.NoError(t, err)

	pool, err := workerpool.New(workerpool.KindShared, 8)
	require.NoError(t, err)

	srv, err := New(&Config{Options: &opts, Engine: eng, Pool: pool, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Serve(ctx)
		close(done)
	}()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		<-done
		eng.Close()
	})

	return srv, srv.Addr().String()
}

func TestServerSetGetRemoveOverTCP(t *testing.T) {
	_, addr := startTestServer(t)
	c := client.New(addr)

	require.NoError(t, c.Set("k", "v"))

	v, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.NoError(t, c.Remove("k"))

	_, ok, err = c.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	err = c.Remove("k")
	require.True(t, errors.IsKeyNotFound(err))
}

func TestServerConcurrentClients(t *testing.T) {
	_, addr := startTestServer(t)

	const clients = 10
	var wg sync.WaitGroup
	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func(i int) {
			defer wg.Done()
			c := client.New(addr)
			key := fmt.Sprintf("k%d", i)
			require.NoError(t, c.Set(key, key))
		}(i)
	}
	wg.Wait()

	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func(i int) {
			defer wg.Done()
			c := client.New(addr)
			key := fmt.Sprintf("k%d", i)
			v, ok, err := c.Get(key)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, key, v)
		}(i)
	}
	wg.Wait()
}

func TestEnsureStickyEngineRejectsMismatch(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, EnsureStickyEngine(dir, "kvs"))
	require.NoError(t, EnsureStickyEngine(dir, "kvs")) // idempotent for the same engine

	err := EnsureStickyEngine(dir, "sled")
	require.Error(t, err)
}

func TestServeStopsOnContextCancel(t *testing.T) {
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.Addr = "127.0.0.1:0"

	eng, err := engine.Open(context.Background(), &engine.Config{
		Dir: opts.DataDir, Options: &opts, Logger: zap.NewNop().Sugar(),
	})
	require.NoError(t, err)
	defer eng.Close()

	pool, err := workerpool.New(workerpool.KindShared, 2)
	require.NoError(t, err)

	srv, err := New(&Config{Options: &opts, Engine: eng, Pool: pool, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}

	_, err = net.Dial("tcp", srv.Addr().String())
	require.Error(t, err)
}
