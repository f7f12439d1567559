/*
Package app signal handling: an interrupt cancels the run and removes any
staging directory before exiting, so a remote input never leaks its clone.
A second interrupt skips the graceful path and terminates immediately.
*/
package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sonemaro/codetext/pkg/logger"
)

// setupSignalHandling installs the interrupt handler for the run.
func (a *App) setupSignalHandling() {
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	go a.handleSignals(a.sigChan)
}

// stopSignalHandling unregisters the interrupt handler and ends its
// goroutine. Safe to call more than once.
func (a *App) stopSignalHandling() {
	a.signalOnce.Do(func() {
		signal.Stop(a.sigChan)
		close(a.sigChan)
	})
}

func (a *App) handleSignals(sigChan chan os.Signal) {
	var shutdownInitiated atomic.Bool

	for sig := range sigChan {
		a.log.WithFields(logger.Fields{
			"signal": sig.String(),
		}).Debug("Received system signal")

		if !shutdownInitiated.CompareAndSwap(false, true) {
			a.log.Warn("Received second interrupt, terminating immediately")
			a.releaseSource()
			os.Exit(1)
		}

		go a.handleInterrupt()
	}
}

// handleInterrupt cancels the run and cleans up with a timeout. The staging
// directory must be gone before the process exits.
func (a *App) handleInterrupt() {
	a.log.Warn("Interrupt received, cleaning up")

	a.cancel()

	done := make(chan struct{})
	go func() {
		a.progress.Stop()
		a.releaseSource()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		a.log.Error("Cleanup timed out")
	}

	os.Exit(1)
}
