// internal/importcli/options.go
package importcli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"reseg/internal/clibase"
	"reseg/internal/config"
	"reseg/internal/events"
)

type Options struct {
	clibase.Common

	// Read
	ReadID       string
	SamplingFreq float64
	StartTime    float64
	RNA          bool
	Attributes   map[string]string

	// Tables
	Basecall      string
	BasecallUnits events.Units
	BasecallFastq string
	Detected      string
	DetectedUnits events.Units
	Detector      string

	BasecallName string
	DetectedName string
	Overwrite    bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "load reads and event tables into a read store", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s --db reads.db --read-id ID --sampling-freq HZ --start-time N \\\n", name)
		_, _ = fmt.Fprintln(out, "      --basecall basecall.tsv --detected events.tsv")

		_, _ = fmt.Fprintln(out, "\nRead:")
		_, _ = fmt.Fprintln(out, "      --read-id string        Read id [required]")
		_, _ = fmt.Fprintln(out, "      --sampling-freq float   Sampling frequency in Hz [required]")
		_, _ = fmt.Fprintf(out, "      --start-time float      Read start in samples [%s]\n", def("start-time"))
		_, _ = fmt.Fprintf(out, "      --rna                   Direct RNA read [%s]\n", def("rna"))
		_, _ = fmt.Fprintln(out, "      --attr key=value        Extra read attribute (repeatable)")

		_, _ = fmt.Fprintln(out, "\nTables (TSV with a header row; start and length required):")
		_, _ = fmt.Fprintln(out, "      --basecall file         Labeled basecall events")
		_, _ = fmt.Fprintf(out, "      --basecall-units string time | index [%s]\n", def("basecall-units"))
		_, _ = fmt.Fprintln(out, "      --basecall-fastq file   Basecall FASTQ record")
		_, _ = fmt.Fprintln(out, "      --detected file         Re-detected events")
		_, _ = fmt.Fprintf(out, "      --detected-units string time | index [%s]\n", def("detected-units"))
		_, _ = fmt.Fprintf(out, "      --detector string       Event detector name [%s]\n", def("detector"))
		_, _ = fmt.Fprintf(out, "      --basecall-analysis string  Basecall analysis name [%s]\n", config.DefaultBasecall)
		_, _ = fmt.Fprintf(out, "      --detected-analysis string  Detected analysis name [%s]\n", config.DefaultDetected)
		_, _ = fmt.Fprintf(out, "      --overwrite             Replace existing tables [%s]\n", def("overwrite"))
	})
	return fs
}

// PrintExamples prints copy-paste invocations of reseg-import.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "reseg-import", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Register a read with both tables:")
		_, _ = fmt.Fprintln(w, "  reseg-import --db run1.db --read-id read_17 \\")
		_, _ = fmt.Fprintln(w, "    --sampling-freq 4000 --start-time 1837263 \\")
		_, _ = fmt.Fprintln(w, "    --basecall read_17.basecall.tsv --basecall-fastq read_17.fastq \\")
		_, _ = fmt.Fprintln(w, "    --detected read_17.events.tsv --detected-units index")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var attrs []string
	var bcUnits, detUnits string

	clibase.Register(fs, &o.Common)

	fs.StringVar(&o.ReadID, "read-id", "", "read id [required]")
	fs.Float64Var(&o.SamplingFreq, "sampling-freq", 0, "sampling frequency (Hz) [required]")
	fs.Float64Var(&o.StartTime, "start-time", 0, "read start (samples) [0]")
	fs.BoolVar(&o.RNA, "rna", false, "direct RNA read [false]")
	fs.Var(clibase.StringSlice(&attrs), "attr", "read attribute key=value (repeatable)")

	fs.StringVar(&o.Basecall, "basecall", "", "basecall events TSV")
	fs.StringVar(&bcUnits, "basecall-units", "time", "basecall units: time | index [time]")
	fs.StringVar(&o.BasecallFastq, "basecall-fastq", "", "basecall FASTQ")
	fs.StringVar(&o.Detected, "detected", "", "detected events TSV")
	fs.StringVar(&detUnits, "detected-units", "index", "detected units: time | index [index]")
	fs.StringVar(&o.Detector, "detector", config.DefaultDetector, "event detector name")
	fs.StringVar(&o.BasecallName, "basecall-analysis", "", "basecall analysis name (default from config)")
	fs.StringVar(&o.DetectedName, "detected-analysis", "", "detected analysis name (default from config)")
	fs.BoolVar(&o.Overwrite, "overwrite", false, "replace existing tables [false]")

	fs.BoolVar(&help, "h", false, "show this help [false]")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if o.Examples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	if strings.TrimSpace(o.ReadID) == "" {
		return o, errors.New("--read-id is required")
	}
	if !(o.SamplingFreq > 0) {
		return o, errors.New("--sampling-freq must be > 0")
	}
	if o.StartTime < 0 {
		return o, errors.New("--start-time must be ≥ 0")
	}
	if o.BasecallFastq != "" && o.Basecall == "" {
		return o, errors.New("--basecall-fastq requires --basecall")
	}
	var err error
	if o.BasecallUnits, err = events.ParseUnits(bcUnits); err != nil {
		return o, fmt.Errorf("--basecall-units: %w", err)
	}
	if o.DetectedUnits, err = events.ParseUnits(detUnits); err != nil {
		return o, fmt.Errorf("--detected-units: %w", err)
	}
	o.Attributes = make(map[string]string, len(attrs))
	for _, kv := range attrs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return o, fmt.Errorf("--attr %q: want key=value", kv)
		}
		o.Attributes[strings.TrimSpace(k)] = v
	}
	return o, nil
}
