// Command wisp drives the interpreter: no arguments starts a REPL, file
// arguments batch-evaluate in order with normal output suppressed, -r
// forces the REPL after files, -h prints help.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aledsdavies/wisp/pkgs/interp"
	"github.com/aledsdavies/wisp/pkgs/ioproxy"
	"github.com/aledsdavies/wisp/pkgs/reader"
	"github.com/aledsdavies/wisp/pkgs/value"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var forceRepl bool
	var debug bool
	exitCode := ExitSuccess

	root := &cobra.Command{
		Use:           "wisp [file ...]",
		Short:         "wisp is an embeddable Clojure-flavored Lisp interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, fileArgs []string) error {
			proxy := ioproxy.NewStdio(stdout, stderr, stdin)
			it := interp.New(proxy)

			if len(fileArgs) == 0 {
				runRepl(it, proxy, stdin, stdout, debug)
				return nil
			}

			ok := runFiles(it, proxy, fileArgs, debug)
			if !ok {
				exitCode = ExitFailure
			}
			if forceRepl {
				runRepl(it, proxy, stdin, stdout, debug)
			}
			return nil
		},
	}

	root.Flags().BoolVarP(&forceRepl, "repl", "r", false, "start the REPL after evaluating any file arguments")
	root.Flags().BoolVar(&debug, "debug", false, "print the path and size of each file argument to stderr before evaluating it")
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return exitCode
}

// runFiles is batch mode: read each file, parse all of its top-level
// forms, evaluate each in order, and suppress normal output; only errors
// are printed. Returns false if any file raised an uncaught error, so the
// driver can set exit status 1.
func runFiles(it *interp.Interp, proxy ioproxy.IO, paths []string, debug bool) bool {
	ok := true
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			proxy.WriteErr(fmt.Sprintf("0: %s\n", err))
			ok = false
			continue
		}
		if debug {
			proxy.WriteErr(fmt.Sprintf("[debug] evaluating %s (%d bytes)\n", path, len(data)))
		}
		if _, err := it.EvalAll(string(data)); err != nil {
			proxy.WriteErr(err.Error() + "\n")
			ok = false
		}
	}
	return ok
}

// runRepl: prompt "> ", read a line, parse it as one form, evaluate and
// print the result's string representation if non-nil, terminate on EOF.
func runRepl(it *interp.Interp, proxy ioproxy.IO, stdin io.Reader, stdout io.Writer, debug bool) {
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		h, err := it.ParseOne(line)
		if err != nil {
			if errors.Is(err, reader.ErrExhausted) {
				continue
			}
			proxy.WriteErr(err.Error() + "\n")
			continue
		}

		// A bare nil is silently skipped, without evaluating it at all.
		// (A blank or whitespace-only line never gets here: ParseOne
		// reports ErrExhausted for it, handled above.)
		parsed, ok := it.Get(h)
		if !ok || parsed.Kind == value.KindNil {
			it.ClearShortTerm()
			continue
		}

		result, err := it.Eval(h)
		if err != nil {
			proxy.WriteErr(err.Error() + "\n")
			it.ClearShortTerm()
			continue
		}

		fmt.Fprintln(stdout, it.RenderReadable(result))
		it.ClearShortTerm()
	}
}
