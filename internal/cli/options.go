// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"reseg/internal/clibase"
	"reseg/internal/cliutil"
	"reseg/internal/config"
	"reseg/internal/output"
	"reseg/internal/writers"
)

// Options holds all reseg flags and arguments.
type Options struct {
	clibase.Common

	// Reads
	Reads    []string // --read values and positionals
	ReadList string

	// Analyses
	Basecall string
	Detected string
	Analysis string

	// Behaviour
	Threads          int
	Accuracy         bool
	Overwrite        bool
	StrictContiguity bool

	// Output
	Output          string
	Pretty          bool
	Sort            bool
	Header          bool // true unless --no-header
	NoMatchExitCode int

	set map[string]bool
}

// NewFlagSet returns a FlagSet with the reseg help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "transfer basecall kmer labels onto re-detected nanopore events", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s --db reads.db [options] [read_id ...]\n", name)

		_, _ = fmt.Fprintln(out, "\nReads:")
		_, _ = fmt.Fprintln(out, "  -r, --read string           Read id (repeatable, comma-separated; default all reads)")
		_, _ = fmt.Fprintln(out, "      --read-list file        File of read ids, one per line ('-' for STDIN)")

		_, _ = fmt.Fprintln(out, "\nAnalyses:")
		_, _ = fmt.Fprintf(out, "      --basecall string       Labeled input table [%s]\n", config.DefaultBasecall)
		_, _ = fmt.Fprintf(out, "      --detected string       Unlabeled input table [%s]\n", config.DefaultDetected)
		_, _ = fmt.Fprintf(out, "      --analysis string       Output table [%s]\n", config.DefaultOutput)
		_, _ = fmt.Fprintf(out, "      --overwrite             Replace an existing output table [%s]\n", def("overwrite"))
		_, _ = fmt.Fprintf(out, "      --strict-contiguity     Skip reads whose tables have gaps or overlaps [%s]\n", def("strict-contiguity"))
		_, _ = fmt.Fprintf(out, "      --accuracy              Align the output against the basecall [%s]\n", def("accuracy"))

		_, _ = fmt.Fprintln(out, "\nPerformance:")
		_, _ = fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))

		_, _ = fmt.Fprintln(out, "\nOutput:")
		_, _ = fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl | fastq [%s]\n", def("output"))
		_, _ = fmt.Fprintf(out, "      --pretty                Summary table instead of TSV (text) [%s]\n", def("pretty"))
		_, _ = fmt.Fprintf(out, "      --sort                  Sort outputs by read id [%s]\n", def("sort"))
		_, _ = fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		_, _ = fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when no read was resegmented [%s]\n", def("no-match-exit-code"))
	})
	return fs
}

// PrintExamples prints copy-paste invocations of reseg.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "reseg", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Relabel every read in a store and print a summary table:")
		_, _ = fmt.Fprintln(w, "  reseg --db run1.db --pretty --accuracy")
		_, _ = fmt.Fprintln(w, "\nTwo reads, FASTQ to a file:")
		_, _ = fmt.Fprintln(w, "  reseg --db run1.db -o fastq read_17 read_42 > reseg.fastq")
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	clibase.Register(fs, &o.Common)

	reads := clibase.StringSlice(&o.Reads)
	fs.Var(reads, "read", "read id (repeatable)")
	fs.Var(reads, "r", "alias of --read")
	fs.StringVar(&o.ReadList, "read-list", "", "file of read ids")

	fs.StringVar(&o.Basecall, "basecall", config.DefaultBasecall, "labeled input analysis")
	fs.StringVar(&o.Detected, "detected", config.DefaultDetected, "unlabeled input analysis")
	fs.StringVar(&o.Analysis, "analysis", config.DefaultOutput, "output analysis")

	fs.IntVar(&o.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")
	fs.BoolVar(&o.Accuracy, "accuracy", false, "report accuracy against the basecall [false]")
	fs.BoolVar(&o.Overwrite, "overwrite", false, "replace an existing output analysis [false]")
	fs.BoolVar(&o.StrictContiguity, "strict-contiguity", false, "fail reads with non-contiguous tables [false]")

	fs.StringVar(&o.Output, "output", output.FormatText, "output: text | json | jsonl | fastq [text]")
	fs.StringVar(&o.Output, "o", output.FormatText, "alias of --output")
	fs.BoolVar(&o.Pretty, "pretty", false, "summary table (text) [false]")
	fs.BoolVar(&o.Sort, "sort", false, "sort outputs by read id [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no read was resegmented [1]")

	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
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

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	o.Header = !noHeader
	o.Reads = append(o.Reads, posArgs...)

	// Validation
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	if o.Threads < 0 {
		return o, errors.New("--threads must be ≥ 0")
	}
	if !writers.Supported(o.Output) {
		return o, fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Pretty && o.Output != output.FormatText {
		return o, errors.New("--pretty only applies to --output text")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return o, errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return o, nil
}

// Set reports whether a flag (or one of its aliases) was given explicitly.
func (o Options) Set(names ...string) bool {
	for _, n := range names {
		if o.set[n] {
			return true
		}
	}
	return false
}

// Apply overlays explicitly given flags onto cfg.
func (o Options) Apply(cfg *config.Config) {
	if o.Set("db", "d") {
		cfg.DB = o.DB
	}
	if o.Set("threads", "t") {
		cfg.Threads = o.Threads
	}
	if o.Set("basecall") {
		cfg.Analyses.Basecall = o.Basecall
	}
	if o.Set("detected") {
		cfg.Analyses.Detected = o.Detected
	}
	if o.Set("analysis") {
		cfg.Analyses.Output = o.Analysis
	}
	if o.Set("accuracy") {
		cfg.Accuracy = o.Accuracy
	}
	if o.Set("overwrite") {
		cfg.Overwrite = o.Overwrite
	}
	if o.Set("strict-contiguity") {
		cfg.StrictContiguity = o.StrictContiguity
	}
	cfg.LogLevel = o.Level(cfg.LogLevel)
}
