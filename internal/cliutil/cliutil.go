// internal/cliutil/cliutil.go
package cliutil

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// BoolFlags returns names of flags that don't require a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals,
// preserving '-','--','--x=y' semantics. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			posArgs = append(posArgs, argv[i+1:]...)
			break
		}
		if arg == "-" {
			posArgs = append(posArgs, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			if strings.Contains(arg, "=") {
				flagArgs = append(flagArgs, arg)
				continue
			}
			name := strings.TrimLeft(arg, "-")
			needsVal := !boolFlags[name]
			flagArgs = append(flagArgs, arg)
			if needsVal && i+1 < len(argv) {
				flagArgs = append(flagArgs, argv[i+1])
				i++
			}
			continue
		}
		posArgs = append(posArgs, arg)
	}
	return
}

// ReadLines returns the non-blank, non-comment lines of path ('-' is stdin).
func ReadLines(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
