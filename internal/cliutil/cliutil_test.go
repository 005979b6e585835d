package cliutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitFlagsAndPositionals(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var b bool
	fs.BoolVar(&b, "bool", false, "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"--bool", "pos1", "--", "pos2"})
	if len(flagArgs) != 1 || len(posArgs) != 2 || posArgs[0] != "pos1" || posArgs[1] != "pos2" {
		t.Fatalf("unexpected split: %v / %v", flagArgs, posArgs)
	}
}

func TestSplitKeepsFlagValues(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	var db string
	fs.StringVar(&db, "db", "", "")
	flagArgs, posArgs := SplitFlagsAndPositionals(fs, []string{"r1", "--db", "reads.db", "r2", "--db=other.db"})
	if strings.Join(flagArgs, " ") != "--db reads.db --db=other.db" {
		t.Fatalf("flags: %v", flagArgs)
	}
	if strings.Join(posArgs, " ") != "r1 r2" {
		t.Fatalf("positionals: %v", posArgs)
	}
}

func TestReadLines(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "ids.txt")
	_ = os.WriteFile(fn, []byte("# reads\nr1\n\n  r2  \n"), 0o644)
	got, err := ReadLines(fn, nil)
	if err != nil || len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Fatalf("read lines: err=%v got=%v", err, got)
	}

	got, err = ReadLines("-", strings.NewReader("r9\n"))
	if err != nil || len(got) != 1 || got[0] != "r9" {
		t.Fatalf("stdin: err=%v got=%v", err, got)
	}

	if _, err := ReadLines(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}
