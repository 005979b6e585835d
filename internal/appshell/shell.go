// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the entry point every reseg binary exposes.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn with a context cancelled on SIGINT/SIGTERM and exits.
func Main(fn RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Exec(ctx, fn, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Exec runs fn and normalizes its exit code. No arguments means -h, and
// a cancelled context never reports success.
func Exec(ctx context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
