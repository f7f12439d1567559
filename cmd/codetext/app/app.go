/*
Package app provides the application container and orchestration for
codetext. It wires the pipeline — source acquisition, exclusion patterns,
traversal, content assembly, artifact writing — and guarantees that a
staging directory created for a remote input is removed on every exit path.

Usage:

	application := app.New(cfg)
	defer application.Shutdown()
	if err := application.Run(); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/internal/config"
	"github.com/sonemaro/codetext/pkg/content"
	"github.com/sonemaro/codetext/pkg/document"
	"github.com/sonemaro/codetext/pkg/logger"
	"github.com/sonemaro/codetext/pkg/pattern"
	"github.com/sonemaro/codetext/pkg/progress"
	"github.com/sonemaro/codetext/pkg/source"
	"github.com/sonemaro/codetext/pkg/walker"
)

// App represents the application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs

	acquirer *source.Acquirer
	progress progress.Progress

	ctx    context.Context
	cancel context.CancelFunc

	sigChan    chan os.Signal
	signalOnce sync.Once

	mu  sync.Mutex
	src *source.Source
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: cfg,
		fs:     afero.NewOsFs(),
		ctx:    ctx,
		cancel: cancel,
	}

	a.log = logger.NewLogger(logger.Config{
		Verbosity: cfg.Verbose,
	})
	a.acquirer = source.NewAcquirer(a.log)
	if cfg.NoProgress {
		a.progress = progress.NewNoop()
	} else {
		a.progress = progress.New(progress.Config{
			Style:       progress.StyleSpinner,
			NoColor:     cfg.NoColor,
			RefreshRate: 100 * time.Millisecond,
		}, a.log)
	}
	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"input":   cfg.Input,
		"output":  cfg.Output,
		"type":    cfg.OutputType,
		"workers": cfg.Workers,
	}).Debug("Application initialized")

	return a
}

// Run executes the conversion pipeline.
func (a *App) Run() error {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
		}
	}()

	ctx, cancel := context.WithTimeout(a.ctx, 1*time.Hour)
	defer cancel()

	a.progress.Start("Acquiring input...")

	src, err := a.acquirer.Acquire(ctx, a.config.Input)
	if err != nil {
		a.progress.Error(fmt.Sprintf("Error: %v", err))
		return fmt.Errorf("failed to acquire input: %w", err)
	}
	a.setSource(src)
	defer a.releaseSource()

	// Project defaults from the traversal root; unreadable or malformed
	// files only lose this one source.
	proj, err := config.LoadProject(a.fs, src.Root)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Debug("Skipping project defaults file")
	} else {
		a.config.ApplyProject(proj)
	}

	store := pattern.NewStore(a.fs, pattern.Options{
		Patterns:    a.config.Exclude,
		ExcludeFile: a.excludeFilePath(),
	}, a.log)

	a.log.WithFields(logger.Fields{
		"patterns": store.Patterns(),
	}).Debug("Active exclusion patterns")

	cls := pattern.NewClassifier(store, src.Root, a.config.ExcludeHidden)

	a.progress.Update(progress.Status{CurrentItem: "Walking directory tree..."})

	res, err := walker.New(a.fs, cls, a.log).Walk(src.Root)
	if err != nil {
		a.progress.Error(fmt.Sprintf("Error: %v", err))
		return fmt.Errorf("traversal failed: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"files":    len(res.Entries),
		"excluded": res.Excluded,
	}).Debug("Total excluded items counted")

	// The writer is resolved before assembly so an invalid output type
	// fails before anything is read or written.
	writer, err := document.ForType(document.Type(a.config.OutputType), a.fs, a.log)
	if err != nil {
		a.progress.Error(fmt.Sprintf("Error: %v", err))
		return err
	}

	a.progress.Update(progress.Status{
		Total:       int64(len(res.Entries)),
		CurrentItem: "Reading file contents...",
	})

	asm := content.New(a.fs, content.Config{
		EmbedImages: a.config.OutputType == config.OutputTypeDocx,
		BufferSize:  a.config.BufferSize,
		Workers:     a.config.Workers,
		RateLimit:   a.config.RateLimit,
	}, a.log)

	records, err := asm.Assemble(ctx, res.Entries)
	if err != nil {
		a.progress.Error(fmt.Sprintf("Error: %v", err))
		return fmt.Errorf("content assembly failed: %w", err)
	}

	if err := writer.Write(document.Compose(res.Tree, records), a.config.Output); err != nil {
		a.progress.Error(fmt.Sprintf("Error: %v", err))
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	a.progress.Complete("Conversion completed")

	a.log.WithFields(logger.Fields{
		"files":    len(res.Entries),
		"excluded": res.Excluded,
		"output":   a.config.Output,
	}).Info("Conversion completed")

	return nil
}

// Shutdown performs a graceful shutdown of the application
func (a *App) Shutdown() error {
	a.log.Debug("Shutting down")

	a.stopSignalHandling()
	a.cancel()
	a.progress.Stop()
	a.releaseSource()

	return nil
}

// excludeFilePath locates the .exclude declarations file: next to a local
// input, or in the current working directory when the input is a remote
// reference that has not been staged at pattern-collection time.
func (a *App) excludeFilePath() string {
	if source.IsRemote(a.config.Input) {
		return ".exclude"
	}
	return filepath.Join(a.config.Input, ".exclude")
}

// setSource records the acquired source so interrupt handling can clean up
// a staging directory even mid-run.
func (a *App) setSource(src *source.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.src = src
}

// releaseSource removes the staging directory, if one exists. Safe to call
// more than once; a failed removal is logged, not escalated.
func (a *App) releaseSource() {
	a.mu.Lock()
	src := a.src
	a.src = nil
	a.mu.Unlock()

	if src == nil {
		return
	}

	if src.Staged {
		a.log.WithFields(logger.Fields{
			"staging": src.Root,
		}).Debug("Removing staging directory")
	}

	if err := src.Cleanup(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Warn("Failed to remove staging directory")
	}
}
