// internal/exportcli/options.go
package exportcli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"reseg/internal/clibase"
	"reseg/internal/config"
)

// Export formats.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatFASTQ = "fastq"
)

type Options struct {
	clibase.Common

	ReadID   string
	Analysis string // "" means the configured output analysis
	Format   string
	Header   bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "write a stored event table or FASTQ record", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s --db reads.db --read-id ID [--analysis NAME] [--format tsv|json|fastq]\n", name)

		_, _ = fmt.Fprintln(out, "\nExport:")
		_, _ = fmt.Fprintln(out, "      --read-id string        Read id [required]")
		_, _ = fmt.Fprintf(out, "      --analysis string       Analysis to export [%s]\n", config.DefaultOutput)
		_, _ = fmt.Fprintf(out, "  -f, --format string         tsv | json | fastq [%s]\n", def("format"))
		_, _ = fmt.Fprintf(out, "      --no-header             Suppress the TSV header [%s]\n", def("no-header"))
	})
	return fs
}

// PrintExamples prints copy-paste invocations of reseg-export.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "reseg-export", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Relabeled events of one read:")
		_, _ = fmt.Fprintln(w, "  reseg-export --db run1.db --read-id read_17 > read_17.reseg.tsv")
		_, _ = fmt.Fprintln(w, "\nIts FASTQ record:")
		_, _ = fmt.Fprintln(w, "  reseg-export --db run1.db --read-id read_17 -f fastq")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, noHeader bool

	clibase.Register(fs, &o.Common)
	fs.StringVar(&o.ReadID, "read-id", "", "read id [required]")
	fs.StringVar(&o.Analysis, "analysis", "", "analysis name (default from config)")
	fs.StringVar(&o.Format, "format", FormatTSV, "tsv | json | fastq [tsv]")
	fs.StringVar(&o.Format, "f", FormatTSV, "alias of --format")
	fs.BoolVar(&noHeader, "no-header", false, "suppress the TSV header [false]")
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
	o.Header = !noHeader

	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	if o.ReadID == "" {
		return o, errors.New("--read-id is required")
	}
	switch o.Format {
	case FormatTSV, FormatJSON, FormatFASTQ:
	default:
		return o, fmt.Errorf("invalid --format %q", o.Format)
	}
	return o, nil
}
