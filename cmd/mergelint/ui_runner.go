package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mergelint/internal/driver"
	"mergelint/internal/source"
	"mergelint/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, inputs []string, opts driver.Options) (*source.FileSet, []driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, res, err := driver.Check(ctx, inputs, optsCopy)
		outcomeCh <- checkOutcome{fileSet: fs, results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// the driver still needs its events drained to finish
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
