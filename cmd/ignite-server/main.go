// Command ignite-server is the thin process wrapper around
// internal/server: it parses flags, opens the configured engine, enforces
// sticky engine selection, and runs the accept loop until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ignitedb/ignite/internal/engine"
	"github.com/ignitedb/ignite/internal/server"
	"github.com/ignitedb/ignite/internal/workerpool"
	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/ignitedb/ignite/pkg/options"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	defaults := options.NewDefaultOptions()

	dir := flag.String("dir", defaults.DataDir, "store directory")
	addr := flag.String("addr", defaults.Addr, "ip:port to listen on")
	engineName := flag.String("engine", defaults.EngineName, "engine implementation (kvs)")
	poolKind := flag.String("pool", defaults.PoolKind, "worker pool kind (shared | work-stealing | naive)")
	threads := flag.Int("threads", runtime.NumCPU(), "worker count")
	flag.Parse()

	log := logger.New("ignite-server")
	defer log.Sync()

	if *engineName != engine.Name {
		return errors.NewConfigurationValidationError("engine", fmt.Sprintf("unsupported engine %q", *engineName))
	}

	if err := server.EnsureStickyEngine(*dir, *engineName); err != nil {
		return err
	}

	opts := options.NewDefaultOptions()
	options.WithDataDir(*dir)(&opts)
	options.WithAddr(*addr)(&opts)
	options.WithEngineName(*engineName)(&opts)
	options.WithPoolKind(*poolKind)(&opts)
	options.WithThreads(*threads)(&opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := engine.Open(ctx, &engine.Config{Dir: opts.DataDir, Options: &opts, Logger: log})
	if err != nil {
		return err
	}
	defer eng.Close()

	pool, err := workerpool.New(workerpool.Kind(opts.PoolKind), opts.Threads)
	if err != nil {
		return err
	}

	srv, err := server.New(&server.Config{Options: &opts, Engine: eng, Pool: pool, Logger: log})
	if err != nil {
		return err
	}

	log.Infow("ignite-server starting", "addr", opts.Addr, "engine", opts.EngineName, "pool", opts.PoolKind, "threads", opts.Threads)
	return srv.Serve(ctx)
}
