package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bigcalc/internal/config"
	"bigcalc/internal/trace"
)

// setupTracing creates the tracer selected by flags and configuration and
// attaches it to the command context. The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command, cfg config.Config) (func(), trace.Tracer, error) {
	output, err := stringSetting(cmd, "trace", cfg.Trace.Output)
	if err != nil {
		return nil, nil, err
	}
	levelStr, err := stringSetting(cmd, "trace-level", cfg.Trace.Level)
	if err != nil {
		return nil, nil, err
	}
	modeStr, err := cmd.Flags().GetString("trace-mode")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := cmd.Flags().GetString("trace-format")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, trace.Nop, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, nil, err
	}
	if level == trace.LevelError {
		mode = trace.ModeRing
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		Output:     traceWriter(cmd, output),
		OutputPath: output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, tracer, nil
}

// traceWriter routes "-" and the default to the command's stderr so that
// redirected error output also captures trace events.
func traceWriter(cmd *cobra.Command, output string) io.Writer {
	if output == "" || output == "-" {
		return cmd.ErrOrStderr()
	}
	return nil
}
