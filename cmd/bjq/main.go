// bjq converts JSON, YAML and CBOR documents to the bjson binary format, runs
// path queries against encoded files, and dumps them back as text.
//
// Usage:
//
//	bjq encode [flags] INPUT OUTPUT
//	bjq query [flags] FILE PATH
//	bjq dump [flags] FILE
//
// INPUT, OUTPUT and FILE may be "-" for stdin or stdout. Encoded files may be
// plain documents or storage frames; frames are detected and unpacked
// automatically.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env carries the process streams and logger into subcommands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(e *env, args []string) error
}

var commands []command

// commands is assigned in init to break the initialization cycle through
// newFlagSet, which reads commands for its usage text.
func init() {
	commands = []command{
		{"encode", "encode [flags] INPUT OUTPUT", "convert a JSON, YAML or CBOR document to bjson", runEncode},
		{"query", "query [flags] FILE PATH", "evaluate a path expression against an encoded file", runQuery},
		{"dump", "dump [flags] FILE", "render an encoded file as JSON, YAML or CBOR", runDump},
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		return nil
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}

		e := &env{stdin: stdin, stdout: stdout, stderr: stderr}

		return c.run(e, args[1:])
	}

	printUsage(stderr)

	return fmt.Errorf("unknown command %q", args[0])
}

// newFlagSet creates the flag set of a subcommand with the shared --verbose flag.
func newFlagSet(e *env, c string, verbose *bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet("bjq "+c, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.BoolVarP(verbose, "verbose", "v", false, "log debug details to stderr")
	fs.Usage = func() {
		for _, cmd := range commands {
			if cmd.name == c {
				fmt.Fprintf(e.stderr, "Usage:\n  bjq %s\n\n%s.\n\nFlags:\n", cmd.usage, cmd.summary)
			}
		}
		fs.PrintDefaults()
	}

	return fs
}

// parseFlags parses args, checks the positional argument count, and sets up
// the logger according to --verbose.
func parseFlags(e *env, fs *pflag.FlagSet, verbose *bool, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	e.logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) != positional {
		fs.Usage()
		return nil, fmt.Errorf("expected %d arguments, got %d", positional, len(rest))
	}

	return rest, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `bjq - encode, query and dump bjson documents.

Usage:
  bjq <command> [flags] [arguments]

Commands:
`)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprint(w, "\nRun \"bjq <command> --help\" for the flags of a command.\n")
}
