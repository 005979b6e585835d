// internal/importapp/app.go
package importapp

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
	"reseg/internal/events"
	"reseg/internal/importcli"
	"reseg/internal/sequence"
	"reseg/internal/store"
	"reseg/internal/version"
	"reseg/internal/writers"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := importcli.NewFlagSet("reseg-import")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = importcli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 0)
	}

	opts, err := importcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			importcli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "reseg-import version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	cfg, err := cmdutil.LoadConfig(opts.Common)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if opts.BasecallName == "" {
		opts.BasecallName = cfg.Analyses.Basecall
	}
	if opts.DetectedName == "" {
		opts.DetectedName = cfg.Analyses.Detected
	}
	logger, err := cmdutil.NewLogger(stderr, cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	// Parse every input before touching the store.
	var basecall, detected events.Table
	var fastq string
	if opts.Basecall != "" {
		t, hdr, err := eventio.ReadTSVFile(opts.Basecall, opts.BasecallUnits)
		if err == nil {
			err = eventio.RequireLabels(hdr)
		}
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.Basecall, err)
			return 2
		}
		basecall = t
	}
	if opts.BasecallFastq != "" {
		b, err := os.ReadFile(opts.BasecallFastq)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		fq, err := sequence.ParseFastq(string(b))
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.BasecallFastq, err)
			return 2
		}
		fastq = fq.String()
	}
	if opts.Detected != "" {
		t, _, err := eventio.ReadTSVFile(opts.Detected, opts.DetectedUnits)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "%s: %v\n", opts.Detected, err)
			return 2
		}
		detected = t
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer st.Close()

	ctx := parent
	id := opts.ReadID
	if err := st.PutRead(ctx, store.Read{
		ID:           id,
		SamplingFreq: opts.SamplingFreq,
		StartTime:    opts.StartTime,
		RNA:          opts.RNA,
		Attributes:   opts.Attributes,
	}); err != nil {
		return fail(stderr, err)
	}
	_, _ = fmt.Fprintf(outw, "%s\tread\tsampling_freq=%g\tstart_time=%g\trna=%t\n", id, opts.SamplingFreq, opts.StartTime, opts.RNA)

	if opts.Basecall != "" {
		attrs := map[string]string{"source": opts.Basecall}
		if err := st.PutEventsFastq(ctx, id, opts.BasecallName, basecall, attrs, fastq, opts.Overwrite); err != nil {
			return fail(stderr, err)
		}
		logger.Info("imported", "read_id", id, "analysis", opts.BasecallName, "events", basecall.Len(), "units", basecall.Units)
		_, _ = fmt.Fprintf(outw, "%s\t%s\t%d events\t%s\n", id, opts.BasecallName, basecall.Len(), basecall.Units)
	}
	if opts.Detected != "" {
		attrs := map[string]string{"source": opts.Detected, "event_detection": opts.Detector}
		if err := st.PutEvents(ctx, id, opts.DetectedName, detected, attrs, opts.Overwrite); err != nil {
			return fail(stderr, err)
		}
		logger.Info("imported", "read_id", id, "analysis", opts.DetectedName, "events", detected.Len(), "units", detected.Units)
		_, _ = fmt.Fprintf(outw, "%s\t%s\t%d events\t%s\n", id, opts.DetectedName, detected.Len(), detected.Units)
	}
	return flush(outw, stderr, 0)
}

// fail maps store errors to exit codes: conflicts are usage errors.
func fail(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintln(stderr, err)
	if errors.Is(err, store.ErrExists) {
		_, _ = fmt.Fprintln(stderr, "hint: pass --overwrite to replace it")
		return 2
	}
	if errors.Is(err, context.Canceled) {
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
