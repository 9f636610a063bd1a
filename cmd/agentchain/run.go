package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dusk-indust/agentchain/internal/export"
	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/spf13/cobra"
)

const defaultGoal = "Design a lead-qualifier AI micro-SaaS for small e-commerce stores."

func newRunCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "run [goal]",
		Short: "Plan a goal into subtasks, answer each, and merge the results",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, a.writeMetrics()) }()

			goal := strings.TrimSpace(strings.Join(args, " "))
			if goal == "" {
				goal = defaultGoal
			}
			switch format {
			case "", "json", "mermaid":
			default:
				return fmt.Errorf("unknown export format %q (want json or mermaid)", format)
			}

			printer := newProgressPrinter(a.stdout)
			pipeline := orchestrator.NewPipeline(a.router(),
				orchestrator.WithProgress(printer.Emit),
				orchestrator.WithLogger(a.log),
				orchestrator.WithRunObserver(a.metrics),
			)

			run, err := pipeline.Run(cmd.Context(), goal)
			if err != nil {
				return err
			}
			printer.Final(run.Answer)

			return writeExport(run, format, out)
		},
	}

	cmd.Flags().StringVar(&format, "export", "", "also write the run as json or mermaid")
	cmd.Flags().StringVar(&out, "out", "", "export file path (default run-<id>.json or .mmd)")
	return cmd
}

func writeExport(run *orchestrator.Run, format, out string) error {
	switch format {
	case "json":
		if out == "" {
			out = "run-" + run.ID + ".json"
		}
		return export.WriteJSON(out, run)
	case "mermaid":
		if out == "" {
			out = "run-" + run.ID + ".mmd"
		}
		if err := os.WriteFile(out, []byte(export.GenerateMermaid(run)), 0644); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}
	}
	return nil
}
