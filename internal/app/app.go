// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"reseg/internal/appcore"
	"reseg/internal/cli"
	"reseg/internal/clibase"
	"reseg/internal/cliutil"
	"reseg/internal/cmdutil"
	"reseg/internal/common"
	"reseg/internal/config"
	"reseg/internal/reseg"
	"reseg/internal/store"
	"reseg/internal/version"
	"reseg/internal/writers"
)

// Stdin is where --read-list - reads from.
var Stdin io.Reader = os.Stdin

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("reseg")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw)
			return flush(outw, stderr, 0)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "reseg version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	cfg := config.Default()
	if opts.Config != "" {
		if cfg, err = config.Load(opts.Config); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	opts.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if cfg.DB == "" {
		_, _ = fmt.Fprintln(stderr, "error: --db is required")
		return 2
	}

	logger, err := cmdutil.NewLogger(stderr, cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	if _, err := os.Stat(cfg.DB); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	st, err := store.Open(cfg.DB)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer st.Close()

	ids := opts.Reads
	if opts.ReadList != "" {
		more, err := cliutil.ReadLines(opts.ReadList, Stdin)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		ids = append(ids, more...)
	}
	ids = common.UniqueIDs(ids)
	if len(ids) == 0 {
		if ids, err = st.ReadIDs(parent); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	rs := reseg.New(st, cfg, logger)
	logger.Info("resegmenting", "run_id", rs.RunID(), "db", cfg.DB, "reads", len(ids),
		"output", cfg.Analyses.Output)

	writer := appcore.NewResultWriterFactory(opts.Output, opts.Sort, opts.Header, opts.Pretty)
	return appcore.Run[reseg.Result](parent, stdout, stderr, appcore.Options{
		ReadIDs:         ids,
		Threads:         cfg.Threads,
		NoMatchExitCode: opts.NoMatchExitCode,
	}, rs, logger, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// flush returns code unless flushing fails for a reason other than a
// closed downstream pipe.
func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
