package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/batch"
	"bigcalc/internal/ui"
)

type batchOutcome struct {
	report *batch.Report
	err    error
}

// runBatchWithUI runs req while a progress view consumes its events.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, req batch.Request) (*batch.Report, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	req.Progress = batch.ChannelSink{Ch: events}
	go func() {
		report, err := batch.Run(ctx, &req)
		outcomeCh <- batchOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the runner is never blocked on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
