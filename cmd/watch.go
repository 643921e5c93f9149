package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
)

// settle absorbs the burst of events editors produce for a single save.
const settle = 100 * time.Millisecond

func watchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sandscript watch <file.ss>")
	}
	path, err := filepath.Abs(cmd.Args().First())
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()
	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watch(ctx, cmd, path, w.Events, w.Errors)
}

// watch runs path once, then again after every write to it, until ctx is
// done or the event channel closes. Each run gets a fresh script.
func watch(ctx context.Context, cmd *cli.Command, path string, events <-chan fsnotify.Event, errs <-chan error) error {
	rerun := func() {
		fmt.Fprintf(stderr(cmd), "=== %s ===\n", filepath.Base(path))
		if err := runFile(cmd, path); err != nil {
			fmt.Fprintf(stderr(cmd), "error: %v\n", err)
		}
	}
	rerun()

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer = time.After(settle)
		case <-timer:
			timer = nil
			rerun()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}
}
