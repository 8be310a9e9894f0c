package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/lumipallolabs/pollwatch/internal/core"
	"github.com/lumipallolabs/pollwatch/internal/model"
	"github.com/lumipallolabs/pollwatch/internal/observer"
)

var (
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed, color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// runPlain starts ctrl and prints one line per change until ctx is done
func runPlain(ctx context.Context, ctrl *core.Controller, w io.Writer) error {
	if err := ctrl.Start(); err != nil {
		return err
	}

	state := ctrl.State()
	fmt.Fprintf(w, "%s %s every %s\n", faint("watching"), state.Watch.Target, state.Watch.Interval)
	if p := state.Previous; p != nil {
		fmt.Fprintf(w, "%s\n", faint(fmt.Sprintf("last run ended %s with %d changes", humanize.Time(p.Ended), len(p.Changes))))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-ctrl.Events():
			switch e := ev.(type) {
			case core.ChangeDetectedEvent:
				fmt.Fprintln(w, formatPlain(e.Change, state.Watch.Target))
			case core.ErrorEvent:
				fmt.Fprintf(w, "%s %v\n", red("error"), e.Err)
			}
		}
	}
}

// formatPlain renders a change as "15:04:05 created path"
func formatPlain(c model.Change, root string) string {
	var kind string
	switch c.Kind {
	case observer.Created:
		kind = green(fmt.Sprintf("%-8s", c.Kind))
	case observer.Modified:
		kind = yellow(fmt.Sprintf("%-8s", c.Kind))
	case observer.Erased:
		kind = red(fmt.Sprintf("%-8s", c.Kind))
	default:
		kind = fmt.Sprintf("%-8s", c.Kind)
	}
	return fmt.Sprintf("%s %s %s", faint(c.At.Format(time.TimeOnly)), kind, c.Rel(root))
}
