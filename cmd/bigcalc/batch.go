package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bigcalc/internal/batch"
	"bigcalc/internal/config"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] FILE...",
		Short: "Evaluate expression files in parallel",
		Long: `Evaluate every line of each FILE as an expression (see "bigcalc eval").
Blank lines and lines starting with # are skipped. Results of unchanged files
are served from the cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, cmd, args)
		},
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("format", "text", "report format (text|json|msgpack)")
	cmd.Flags().StringP("output", "o", "", "write the report to file instead of stdout")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

type batchOptions struct {
	jobs    int
	format  batch.Format
	output  string
	noCache bool
	ui      config.Mode
	quiet   bool
}

func readBatchOptions(cmd *cobra.Command, cfg config.Config) (batchOptions, error) {
	var opts batchOptions
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Batch.Jobs
	}
	if jobs < 0 {
		return opts, fmt.Errorf("--jobs must be >= 0, got %d", jobs)
	}
	opts.jobs = jobs

	formatStr, err := stringSetting(cmd, "format", cfg.Batch.Format)
	if err != nil {
		return opts, err
	}
	if opts.format, err = batch.ParseFormat(formatStr); err != nil {
		return opts, err
	}

	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return opts, fmt.Errorf("failed to get output flag: %w", err)
	}
	if opts.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return opts, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	opts.noCache = opts.noCache || !cfg.Batch.Cache

	if opts.ui, err = readMode(cmd, "ui", cfg.UI.Mode); err != nil {
		return opts, err
	}
	if opts.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return opts, nil
}

func openCache(cfg config.Config) (*batch.DiskCache, error) {
	dir := cfg.Batch.CacheDir
	if dir == "" {
		var err error
		if dir, err = batch.DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	return batch.OpenDiskCache(dir)
}

func runBatch(a *app, cmd *cobra.Command, files []string) error {
	opts, err := readBatchOptions(cmd, a.cfg)
	if err != nil {
		return err
	}

	req := batch.Request{Files: files, Jobs: opts.jobs}
	if !opts.noCache {
		cache, err := openCache(a.cfg)
		if err != nil {
			// evaluation still works without a cache
			if !opts.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			}
		} else {
			req.Cache = cache
		}
	}

	idx := a.timer.Begin("evaluate")
	var report *batch.Report
	out := cmd.OutOrStdout()
	if !opts.quiet && modeEnabled(opts.ui, out) {
		report, err = runBatchWithUI(cmd.Context(), out, "evaluating", req)
	} else {
		report, err = batch.Run(cmd.Context(), &req)
	}
	if err != nil {
		a.timer.End(idx, "")
		return err
	}
	a.timer.End(idx, fmt.Sprintf("%d files, %d lines", len(report.Files), report.Lines))

	idx = a.timer.Begin("report")
	err = writeBatchReport(out, report, opts)
	a.timer.End(idx, string(opts.format))
	if err != nil {
		return err
	}

	if report.HasErrors() {
		return batchError(report)
	}
	return nil
}

func batchError(report *batch.Report) error {
	unreadable := 0
	for i := range report.Files {
		if report.Files[i].Error != "" {
			unreadable++
		}
	}
	switch {
	case unreadable > 0 && report.Failed > 0:
		return fmt.Errorf("%d unreadable files, %d of %d lines failed", unreadable, report.Failed, report.Lines)
	case unreadable > 0:
		return fmt.Errorf("%d unreadable files", unreadable)
	default:
		return fmt.Errorf("%d of %d lines failed", report.Failed, report.Lines)
	}
}

func writeBatchReport(stdout io.Writer, report *batch.Report, opts batchOptions) (err error) {
	if opts.output == "" {
		return batch.WriteReport(stdout, report, opts.format)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return batch.WriteReport(f, report, opts.format)
}
