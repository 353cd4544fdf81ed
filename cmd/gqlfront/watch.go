package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce groups the burst of events editors produce for one save.
const debounce = 100 * time.Millisecond

// watch validates once, then again whenever a document or schema file
// changes, until ctx is done.
func (a *app) watch(ctx context.Context, args []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, pattern := range append(append([]string{}, args...), a.cfg.Schema...) {
		if pattern == "-" {
			return errors.New("--watch cannot read stdin")
		}
		paths, err := expand(pattern)
		if err != nil {
			return err
		}
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			watched[abs] = true
			dirs[filepath.Dir(abs)] = true
		}
	}
	// Directories survive editors that replace files on save.
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	a.revalidate(ctx, args)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, _ := filepath.Abs(ev.Name)
			if !watched[abs] {
				continue
			}
			a.logger.Debug("file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			timer = time.After(debounce)
		case <-timer:
			timer = nil
			a.revalidate(ctx, args)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// revalidate reloads the schema and documents and reports them. Failures
// are logged; watching continues.
func (a *app) revalidate(ctx context.Context, args []string) {
	s, err := a.loadSchema(ctx)
	if err != nil {
		a.logger.Error("schema", zap.Error(err))
		return
	}
	srcs, err := a.readSources(args)
	if err != nil {
		a.logger.Error("documents", zap.Error(err))
		return
	}
	if err := a.validateAll(ctx, s, srcs); err != nil && !errors.Is(err, errFailed) {
		a.logger.Error("validate", zap.Error(err))
	}
}
