package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the 3 agentchain tools registered:
// route_prompt, run_goal, and list_providers.
func NewServer(svc *AgentService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "agentchain",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "route_prompt",
		Description: "Send a prompt to the first provider in the routing order that returns text. Falls back through the remaining providers on failure.",
	}, svc.RoutePrompt)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_goal",
		Description: "Break a goal into 3-5 subtasks, answer each in order, and merge the results into one final answer.",
	}, svc.RunGoal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_providers",
		Description: "List the configured providers, the current routing order, and optionally whether each provider is reachable.",
	}, svc.ListProviders)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP tools over streamable HTTP at /mcp. Extra
// handlers, such as /metrics, are mounted alongside it.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string, extra map[string]http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	))
	for pattern, h := range extra {
		mux.Handle(pattern, h)
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
