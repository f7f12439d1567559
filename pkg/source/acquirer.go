/*
Package source resolves the conversion input: a local directory is used as
is, a remote repository reference is cloned into a staging directory that
must be removed once the run that created it has finished reading from it.

Basic usage:

	src, err := source.NewAcquirer(log).Acquire(ctx, input)
	if err != nil {
	    return err
	}
	defer src.Cleanup()
*/
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/sonemaro/codetext/pkg/logger"
)

// Remote repository references are recognized by these fixed prefixes.
const (
	httpsPrefix = "https://github.com/"
	sshPrefix   = "git@github.com:"
)

// ErrNotDirectory indicates a local input path that exists but is not a
// directory.
var ErrNotDirectory = errors.New("input path is not a directory")

// IsRemote reports whether the input is a remote repository reference.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, httpsPrefix) || strings.HasPrefix(input, sshPrefix)
}

// Source is a resolved input root. A staged source owns its directory and
// must be cleaned up by the caller on every exit path.
type Source struct {
	// Root is the absolute traversal root.
	Root string

	// Staged is true when Root is a staging directory created for a
	// remote input.
	Staged bool
}

// Cleanup removes the staging directory, if any. A failed removal is a
// leak, not a correctness failure; callers should log it, not escalate.
func (s *Source) Cleanup() error {
	if !s.Staged {
		return nil
	}
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("failed to remove staging directory %s: %w", s.Root, err)
	}
	return nil
}

// Acquirer resolves conversion inputs.
type Acquirer struct {
	log logger.Logger
}

// NewAcquirer creates an acquirer.
func NewAcquirer(log logger.Logger) *Acquirer {
	return &Acquirer{log: log}
}

// Acquire resolves the input to a traversal root. Remote references are
// cloned into a fresh staging directory; a clone failure aborts the run
// with the staging directory already removed.
func (a *Acquirer) Acquire(ctx context.Context, input string) (*Source, error) {
	if IsRemote(input) {
		return a.stage(ctx, input)
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path %s: %w", input, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access input path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	return &Source{Root: abs}, nil
}

func (a *Acquirer) stage(ctx context.Context, url string) (*Source, error) {
	dir, err := os.MkdirTemp("", "github_repo_")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"url":     url,
		"staging": dir,
	}).Debug("Cloning repository")

	if _, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url}); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			a.log.WithFields(logger.Fields{
				"staging": dir,
				"error":   rmErr,
			}).Warn("Failed to remove staging directory")
		}
		return nil, fmt.Errorf("failed to clone repository %s: %w", url, err)
	}

	a.log.WithFields(logger.Fields{
		"url":     url,
		"staging": dir,
	}).Debug("Repository cloned")

	return &Source{Root: dir, Staged: true}, nil
}
