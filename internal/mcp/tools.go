// Package mcp exposes a spinner registry over the Model Context Protocol.
// Tools are registered in a ToolRegistry at init time and bound to a live
// registry when the server is built.
package mcp

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"spinplex/internal/catalog"
	"spinplex/internal/spinner"
)

// ServerName and ServerVersion identify the MCP server.
const (
	ServerName    = "spinplex"
	ServerVersion = "0.1.0"
)

// ToolHandler is the function signature for MCP tool handlers.
type ToolHandler func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error)

// Deps is what tool handlers operate on.
type Deps struct {
	Registry *spinner.Registry
	Catalog  *catalog.Catalog
	// BarStyle and BarWidth are used when add_progress omits them.
	BarStyle string
	BarWidth int
}

// ToolHandlerFactory binds a tool to its dependencies.
type ToolHandlerFactory func(deps *Deps) ToolHandler

// ToolRegistration holds a tool definition and its handler factory.
type ToolRegistration struct {
	Tool           mcplib.Tool
	HandlerFactory ToolHandlerFactory
}

// ToolRegistry holds all available tools.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]ToolRegistration
}

// NewToolRegistry creates a new empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]ToolRegistration),
	}
}

// Register adds a tool. A tool with the same name is replaced.
func (r *ToolRegistry) Register(tool mcplib.Tool, handlerFactory ToolHandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = ToolRegistration{
		Tool:           tool,
		HandlerFactory: handlerFactory,
	}
}

// Get returns a tool registration by name.
func (r *ToolRegistry) Get(name string) (ToolRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	return reg, ok
}

// All returns all registrations sorted by tool name.
func (r *ToolRegistry) All() []ToolRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]ToolRegistration, 0, len(r.tools))
	for _, reg := range r.tools {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].Tool.Name < regs[j].Tool.Name })
	return regs
}

// Names returns the sorted names of all registered tools.
func (r *ToolRegistry) Names() []string {
	regs := r.All()
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.Tool.Name
	}
	return names
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// DefaultToolRegistry is the global tool registry. Tool packages register
// themselves here from init functions.
var DefaultToolRegistry = NewToolRegistry()

// NewServer builds an MCP server exposing every tool in tools bound to deps.
func NewServer(tools *ToolRegistry, deps *Deps) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, reg := range tools.All() {
		handler := reg.HandlerFactory(deps)
		srv.AddTool(reg.Tool, func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			return handler(ctx, req)
		})
	}
	return srv
}

// ServeStdio serves srv over in and out until ctx is cancelled or in closes.
// Transport errors are reported to logger at error level.
func ServeStdio(ctx context.Context, srv *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}
