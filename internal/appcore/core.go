// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"reseg/internal/cmdutil"
	"reseg/internal/pipeline"
	"reseg/internal/writers"
)

type Options struct {
	ReadIDs []string
	Threads int

	NoMatchExitCode int
}

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run drives w over o.ReadIDs and streams results through wf. Reads that
// fail are logged and skipped. The return value is the process exit code.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	w pipeline.Worker[T],
	logger *log.Logger,
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	if len(o.ReadIDs) == 0 {
		logger.Warn("no reads to process")
		return o.NoMatchExitCode
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	if thr > len(o.ReadIDs) {
		thr = len(o.ReadIDs)
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	skipped := 0
	total, perr := cmdutil.RunStream[T](
		ctx,
		pipeline.Config{Threads: thr},
		o.ReadIDs,
		w,
		func(id string, err error) error {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			skipped++
			logger.Warn("skipping read", "read_id", id, "err", err)
			return nil
		},
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	logger.Info("done", "reads", len(o.ReadIDs), "resegmented", total, "skipped", skipped)
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
