package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/sonemaro/codetext/pkg/logger"
	"github.com/sonemaro/codetext/pkg/walker"
	"github.com/sonemaro/codetext/pkg/worker"
)

// assembleConcurrent routes reads through the worker pool. The pool
// preserves submission order, so the joined output is byte-identical to the
// sequential path.
func (a *Assembler) assembleConcurrent(ctx context.Context, entries []walker.Entry) (string, error) {
	pool, err := worker.NewPool(worker.Config{
		Workers:   a.cfg.Workers,
		RateLimit: a.cfg.RateLimit,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create worker pool: %w", err)
	}

	if err := pool.Start(ctx); err != nil {
		return "", fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer func() {
		if err := pool.Stop(); err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Error stopping worker pool")
		}
	}()

	for i, e := range entries {
		i, e := i, e
		task := worker.Task{
			ID: i,
			Execute: func(ctx context.Context) (worker.Result, error) {
				return worker.Result{ID: i, Data: a.record(e)}, nil
			},
		}
		if err := pool.Submit(task); err != nil {
			return "", fmt.Errorf("failed to submit read task for %s: %w", e.RelPath, err)
		}
	}

	results, err := pool.Wait()
	if err != nil {
		return "", fmt.Errorf("error waiting for read tasks: %w", err)
	}

	var b strings.Builder
	for _, r := range results {
		if rec, ok := r.Data.(string); ok {
			b.WriteString(rec)
		}
	}

	a.log.WithFields(logger.Fields{
		"files":   len(entries),
		"workers": a.cfg.Workers,
	}).Debug("Content assembly completed")

	return b.String(), nil
}
