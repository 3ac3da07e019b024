package main

import (
	"fmt"
	"io"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/application"
)

// consoleDisplay prints orchestrator updates as plain lines.
type consoleDisplay struct {
	out     io.Writer
	summary application.Summary
}

func newConsoleDisplay(out io.Writer) *consoleDisplay {
	return &consoleDisplay{out: out}
}

func (d *consoleDisplay) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(d.out, "Calculating...")
	}
}

func (d *consoleDisplay) SetAlert(alert application.Alert) {
	if alert.IsZero() {
		return
	}
	fmt.Fprintf(d.out, "[%s] %s\n", alert.Kind, alert.Message)
}

func (d *consoleDisplay) SetSummary(summary application.Summary) {
	d.summary = summary
}

func (d *consoleDisplay) ShowResult(visible bool) {
	if !visible {
		return
	}
	s := d.summary
	fmt.Fprintf(d.out, "From:             %s\n", s.From)
	fmt.Fprintf(d.out, "To:               %s\n", s.To)
	fmt.Fprintf(d.out, "Distance:         %s\n", s.Distance)
	fmt.Fprintf(d.out, "Time:             %s\n", s.Time)
	fmt.Fprintf(d.out, "Minimum estimate: %s\n", s.Estimate)
	fmt.Fprintln(d.out, s.Status)
}

func (d *consoleDisplay) ClearForm() {}
