package subdu

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/idelchi/subdu/internal/pool"
)

// controller tracks the coordinator state for logging.
type controller struct {
	log   logrus.FieldLogger
	state State
}

func (c *controller) enter(s State) {
	c.log.WithField("state", s).Debugf("%s -> %s", c.state, s)
	c.state = s
}

// Run lists the subdirectories of opt.Path, measures each one on a pool of
// opt.Workers workers and calls emit for every result as it completes.
//
// emit is only ever called from the calling goroutine. Cancelling ctx
// terminates the pool: queued tasks are dropped, in-flight walks are
// abandoned and Run returns Interrupted without waiting for them.
// Errors are only returned for the root path, before any work starts.
func Run(ctx context.Context, opt Options, fsys afero.Fs, log logrus.FieldLogger, emit func(Result)) (Outcome, error) {
	dirs, err := ListSubdirs(fsys, opt.Path)
	if err != nil {
		return Completed, err
	}

	ctrl := &controller{log: log, state: Running}

	workers := pool.New[Result](ctx, opt.Workers)

	log.WithFields(logrus.Fields{
		"path":    opt.Path,
		"folders": len(dirs),
		"workers": workers.Size(),
	}).Debug("starting")

	results := make(chan Result, len(dirs))

	for _, dir := range dirs {
		err := workers.Submit(dir,
			func(ctx context.Context) Result { return Size(ctx, dir, log) },
			func(r Result) { results <- r },
		)
		if err != nil {
			// Only possible once ctx is cancelled.
			log.Debugf("submitting %s: %v", dir, err)

			break
		}
	}

	workers.Close()
	ctrl.enter(Draining)

	drained := make(chan struct{})

	go func() {
		workers.Wait()
		close(drained)
	}()

	for {
		select {
		case r := <-results:
			emit(r)
		case <-drained:
			if ctx.Err() != nil {
				return ctrl.interrupt(workers), nil
			}

			// Everything sent before the drain is already buffered.
			for {
				select {
				case r := <-results:
					emit(r)
				default:
					ctrl.enter(Exited)

					return Completed, nil
				}
			}
		case <-ctx.Done():
			return ctrl.interrupt(workers), nil
		}
	}
}

func (c *controller) interrupt(workers interface{ Terminate() }) Outcome {
	c.enter(InterruptReceived)
	c.enter(Terminating)
	workers.Terminate()
	c.enter(Exited)

	return Interrupted
}
