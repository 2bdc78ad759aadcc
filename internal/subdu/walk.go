package subdu

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// tally accumulates sizes from fastwalk callbacks.
type tally struct {
	mu      sync.Mutex
	bytes   int64
	skipped int
	errs    error
}

func (t *tally) add(size int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bytes += size
}

func (t *tally) skip(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.skipped++
	t.errs = multierr.Append(t.errs, err)
}

// Size sums the sizes of all regular files beneath dir.
//
// Symbolic links are neither counted nor followed, except that dir itself is
// resolved when it is a link to a directory. Entries that fail to be read or
// stat'ed are skipped and recorded in the result; they never fail the walk.
// If ctx is cancelled the walk stops early and the partial result is returned.
func Size(ctx context.Context, dir string, log logrus.FieldLogger) Result {
	var t tally

	log = log.WithField("path", dir)

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.skip(fmt.Errorf("resolving %q: %w", dir, err))

		return t.result(dir)
	}

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skipping %s: %v", path, err)
			t.skip(err)

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Debugf("skipping %s: %v", path, err)
			t.skip(err)

			return nil
		}

		t.add(info.Size())

		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
		t.skip(walkErr)
	}

	result := t.result(dir)

	log.WithFields(logrus.Fields{
		"bytes":   result.Bytes,
		"skipped": result.Skipped,
	}).Debugf("measured %s", humanize.IBytes(uint64(max(result.Bytes, 0)))) //nolint:gosec // Clamped to non-negative

	return result
}

func (t *tally) result(path string) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Result{
		Path:    path,
		Bytes:   t.bytes,
		Skipped: t.skipped,
		Err:     t.errs,
	}
}
