package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigcalc/internal/config"
	"bigcalc/internal/observ"
	"bigcalc/internal/prof"
	"bigcalc/internal/trace"
	"bigcalc/internal/version"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	cfg     config.Config
	timer   *observ.Timer
	tracer  trace.Tracer
	cleanup func()
	prof    *prof.Session
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bigcalc",
		Short:         "Arbitrary-precision integer calculator",
		Long:          `bigcalc evaluates integer expressions of any size, one at a time or in batches of files`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("config", "", "path to bigcalc.toml (default: search upward from the working directory)")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "text", "trace output format (text|ndjson)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newSortCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads configuration and starts color, tracing and profiling.
func (a *app) setup(cmd *cobra.Command) error {
	a.timer = observ.NewTimer()
	idx := a.timer.Begin("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.timer.End(idx, cfg.Path)

	if err := applyColor(cmd, cfg); err != nil {
		return err
	}

	cleanup, tracer, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	a.cleanup, a.tracer = cleanup, tracer

	session, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.prof = session
	return nil
}

// finish releases tracing and prints timings. runErr is the command's result.
func (a *app) finish(cmd *cobra.Command, runErr error) {
	errOut := cmd.ErrOrStderr()
	if err := a.prof.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err)
	}
	if runErr != nil && a.tracer != nil {
		if ring, ok := trace.Ring(a.tracer); ok {
			fmt.Fprintln(errOut, "trace: recent events:")
			if err := ring.Dump(errOut, trace.FormatText); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
	}
	if a.cleanup != nil {
		a.cleanup()
	}
	if a.timer == nil {
		return
	}
	if showTimings, err := cmd.Root().PersistentFlags().GetBool("timings"); err == nil && showTimings {
		fmt.Fprint(errOut, a.timer.Summary())
	}
}

// execute runs the CLI with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if cmd == nil {
		cmd = root
	}
	a.finish(cmd, err)
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}
