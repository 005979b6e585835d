// internal/exportapp/app.go
package exportapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"reseg/internal/clibase"
	"reseg/internal/cmdutil"
	"reseg/internal/eventio"
	"reseg/internal/exportcli"
	"reseg/internal/output"
	"reseg/internal/store"
	"reseg/internal/version"
	"reseg/internal/writers"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := exportcli.NewFlagSet("reseg-export")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = exportcli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	}

	opts, err := exportcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			exportcli.PrintExamples(outw)
			return flush(outw, stderr, 0)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "reseg-export version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	cfg, err := cmdutil.LoadConfig(opts.Common)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if opts.Analysis == "" {
		opts.Analysis = cfg.Analyses.Output
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

	switch opts.Format {
	case exportcli.FormatFASTQ:
		fq, err := st.GetFastq(ctx, opts.ReadID, opts.Analysis)
		if err != nil {
			return fail(stderr, err)
		}
		_, _ = io.WriteString(outw, fq)
	default:
		t, err := st.GetEvents(ctx, opts.ReadID, opts.Analysis)
		if err != nil {
			return fail(stderr, err)
		}
		if opts.Format == exportcli.FormatJSON {
			err = output.WriteTableJSON(outw, opts.ReadID, opts.Analysis, t)
		} else {
			err = eventio.WriteTSV(outw, t, opts.Header)
		}
		if err != nil && !writers.IsBrokenPipe(err) {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}
	return flush(outw, stderr, 0)
}

// fail reports a lookup error; a missing analysis is "no match".
func fail(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintln(stderr, err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return 1
	case errors.Is(err, context.Canceled):
		return 130
	}
	return 3
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}
