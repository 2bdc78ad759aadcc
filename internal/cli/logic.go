package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/idelchi/subdu/internal/subdu"
)

const (
	// ClosingNotice is printed after every subdirectory was measured.
	ClosingNotice = "Closing pool"
	// InterruptNotice is printed when an interrupt abandons the run.
	InterruptNotice = "Caught interrupt, terminating workers"
)

// progress redraws a status line on a terminal.
type progress struct {
	out  io.Writer
	done int
}

func (p *progress) render() {
	if p == nil {
		return
	}

	fmt.Fprintf(p.out, "\r\033[2KMeasuring… %d folders done\r", p.done)
}

func (p *progress) clear() {
	if p == nil {
		return
	}

	fmt.Fprint(p.out, "\r\033[2K\r")
}

// environment holds the streams and toggles of one invocation.
type environment struct {
	stdout   io.Writer
	stderr   io.Writer
	fs       afero.Fs
	log      logrus.FieldLogger
	progress bool
}

func newLogger(out io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	return log
}

func logic(ctx context.Context, options subdu.Options, env environment) error {
	var bar *progress

	if env.progress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(env.stderr, "\033[?25l")
		defer fmt.Fprint(env.stderr, "\033[?25h")

		bar = &progress{out: env.stderr}
		bar.render()
	}

	var printErr error

	outcome, err := subdu.Run(ctx, options, env.fs, env.log, func(result subdu.Result) {
		bar.clear()

		if result.Err != nil {
			env.log.WithFields(logrus.Fields{
				"path":    result.Path,
				"skipped": result.Skipped,
			}).Debugf("skipped entries: %v", result.Err)
		}

		if err := PrintResult(env.stdout, result); err != nil && printErr == nil {
			printErr = err
		}

		if bar != nil {
			bar.done++
			bar.render()
		}
	})

	bar.clear()

	if err != nil {
		return err
	}

	env.log.WithField("outcome", outcome).Debug("run finished")

	if outcome == subdu.Interrupted {
		fmt.Fprintln(env.stdout, InterruptNotice)

		return nil
	}

	fmt.Fprintln(env.stdout, ClosingNotice)

	if printErr != nil {
		return fmt.Errorf("writing results: %w", printErr)
	}

	return nil
}
