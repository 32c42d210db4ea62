package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"strcheck/internal/driver"
)

type checkOutcome struct {
	result *driver.CheckResult
	err    error
}

// RunCheck runs driver.Check while rendering progress to out. The check's
// own Progress sink is replaced. Quitting the view (Ctrl+C) cancels the check.
func RunCheck(ctx context.Context, out io.Writer, title string, files []string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, files, &opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if pm, ok := final.(*progressModel); !ok || !pm.done {
		cancel()
	}
	// дочитываем события, чтобы Check не встал на полном канале
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
