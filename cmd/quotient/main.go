// Command quotient is a small CLI front end for the quotient core: it runs
// a source file or stdin to completion, drives a line-at-a-time REPL, or
// single-steps a program printing the continuation's progress.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quotient-lang/quotient"
	"github.com/quotient-lang/quotient/internal/flushio"
	"github.com/quotient-lang/quotient/internal/logio"
)

var logger logio.Logger

// stdout buffers every write this CLI makes to the terminal; it is flushed
// once per run, once per step, and once per REPL line, rather than letting
// every fmt.Fprint make its own syscall.
var stdout = flushio.NewWriteFlusher(os.Stdout)

func main() {
	logger.SetOutput(nopCloser{os.Stderr})

	var logLevel string
	var stepLimit int
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "quotient",
		Short:         "Run and inspect quotient programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log verbosity: debug, info, warn, error")
	root.PersistentFlags().IntVar(&stepLimit, "step-limit", quotient.DefaultStepLimit, "abort a runaway program after this many dispatch steps (0 disables)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort a running program after this long (0 disables), same role as the teacher's -timeout flag")

	newInterpreter := func() *quotient.Interpreter {
		return quotient.New(
			quotient.WithLogf(levelLogf(&logLevel)),
			quotient.WithStepLimit(stepLimit),
		)
	}

	root.AddCommand(runCmd(newInterpreter, &timeout))
	root.AddCommand(replCmd(newInterpreter))
	root.AddCommand(stepCmd(newInterpreter))

	if err := root.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(logger.ExitCode())
	}
	os.Exit(logger.ExitCode())
}

var logLevelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// levelLogf returns a logf that only calls through to logger when "debug"
// (the level every internal diagnostic is logged at) meets or exceeds the
// configured --log-level threshold.
func levelLogf(configured *string) func(string, ...interface{}) {
	return func(mess string, args ...interface{}) {
		if logLevelRank["debug"] < logLevelRank[*configured] {
			return
		}
		logger.Printf("DEBUG", mess, args...)
	}
}

func runCmd(newInterpreter func() *quotient.Interpreter, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Execute a program from a file, or stdin if omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if *timeout != 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, *timeout)
				defer cancel()
			}
			in := newInterpreter()
			res := in.ExecuteContext(ctx, source)
			writeANSI(stdout, res.Output)
			stdout.Flush()
			if res.Status != "OK" {
				fmt.Fprintln(os.Stderr, res.Status)
				logger.Errorf("%s", res.Status)
			}
			return nil
		},
	}
}

func stepCmd(newInterpreter func() *quotient.Interpreter) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "step [file]",
		Short: "Single-step a program, printing continuation progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args)
			if err != nil {
				return err
			}
			in := newInterpreter()
			if status := in.InitStep(source); status != "OK" {
				fmt.Fprintln(os.Stderr, status)
				return nil
			}
			for {
				r := in.Step()
				writeANSI(stdout, r.Output)
				stdout.Flush()
				if trace {
					fmt.Fprintf(os.Stderr, "step %d/%d\n", r.Position, r.Total)
				}
				if r.Status != "" {
					fmt.Fprintln(os.Stderr, r.Status)
					logger.Errorf("%s", r.Status)
					break
				}
				if !r.HasMore {
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print position/total after every step")
	return cmd
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

type nopCloser struct{ *os.File }

func (nopCloser) Close() error { return nil }
