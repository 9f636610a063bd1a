package main

import (
	"net/http"

	"github.com/dusk-indust/agentchain/internal/llm"
	"github.com/dusk-indust/agentchain/internal/mcptools"
	"github.com/dusk-indust/agentchain/internal/metrics"
	"github.com/dusk-indust/agentchain/internal/orchestrator"
	"github.com/dusk-indust/agentchain/internal/status"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		stdio bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server (streamable HTTP with /metrics, or stdio)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			router := a.router()
			pipeline := orchestrator.NewPipeline(router,
				orchestrator.WithLogger(a.log),
				orchestrator.WithRunObserver(a.metrics),
			)
			probes := status.Probes(a.settings, llm.WithClientLogger(a.log))
			server := mcptools.NewServer(mcptools.NewAgentService(router, pipeline, probes))

			if stdio {
				return mcptools.RunStdio(cmd.Context(), server)
			}

			a.log.Info().Str("addr", addr).Msg("serving MCP on /mcp and metrics on /metrics")
			return mcptools.RunHTTP(cmd.Context(), server, addr, map[string]http.Handler{
				"/metrics": metrics.Handler(a.registry),
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8088", "HTTP listen address")
	cmd.Flags().BoolVar(&stdio, "stdio", false, "use the stdio transport instead of HTTP")
	return cmd
}
