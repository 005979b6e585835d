// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"reseg/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections between the header and the shared blocks.
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s: %s\n\n", name, tagline)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nStore:")
		fmt.Fprintln(out, "  -d, --db file               SQLite read store")
		fmt.Fprintln(out, "      --config file           YAML configuration (flags override it)")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Only log errors [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --log-level string      debug | info | warn | error [info]")
		fmt.Fprintln(out, "      --examples              Print usage examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
