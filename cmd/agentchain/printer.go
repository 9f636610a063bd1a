package main

import (
	"fmt"
	"io"

	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/fatih/color"
)

// progressPrinter renders pipeline progress to the console.
type progressPrinter struct {
	w      io.Writer
	header *color.Color
	failed *color.Color
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		failed: color.New(color.FgRed),
	}
}

// Emit prints one event. It is passed to orchestrator.WithProgress.
func (p *progressPrinter) Emit(e orchestrator.ProgressEvent) {
	line := orchestrator.FormatProgress(e)
	if line == "" {
		return
	}
	switch {
	case e.Status == orchestrator.ProgressFailed:
		p.failed.Fprintln(p.w, line)
	case e.Phase == orchestrator.PhaseExecuting && e.Status == orchestrator.ProgressComplete:
		fmt.Fprintln(p.w, line)
	default:
		p.header.Fprintln(p.w, line)
	}
}

// Final prints the banner and the final answer.
func (p *progressPrinter) Final(answer string) {
	color.New(color.FgGreen, color.Bold).Fprint(p.w, orchestrator.FinalAnswerBanner+"\n")
	fmt.Fprintln(p.w, answer)
}

func printStatus(w io.Writer, symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}
