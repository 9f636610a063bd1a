package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/status"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var noProbe bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show provider configuration, reachability, and routing order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var probes map[llm.Identity]status.Prober
			if !noProbe {
				probes = status.Probes(a.settings, llm.WithClientLogger(a.log))
			}
			printReport(a.stdout, status.Check(cmd.Context(), a.settings, probes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "skip network reachability checks")
	return cmd
}

func printReport(w io.Writer, r status.Report) {
	for _, p := range r.Providers {
		msg := fmt.Sprintf("%-7s %-17s model=%s", p.Provider, "("+p.Role+")", p.Model)
		if p.MaskedKey != "" {
			msg += " key=" + p.MaskedKey
		}

		switch {
		case !p.Configured:
			printStatus(w, "○", msg+"  not configured", color.FgYellow)
		case !p.Probed:
			printStatus(w, "●", msg+"  configured", color.FgCyan)
		case p.Reachable:
			printStatus(w, "✓", msg+"  reachable", color.FgGreen)
		default:
			printStatus(w, "✗", msg+"  unreachable: "+p.Detail, color.FgRed)
		}
	}

	names := make([]string, len(r.Order))
	for i, id := range r.Order {
		names[i] = string(id)
	}
	order := strings.Join(names, " -> ")
	if r.Forced != "" {
		order += " (forced)"
	}
	fmt.Fprintf(w, "\nRouting order: %s\n", order)
}
