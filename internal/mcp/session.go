package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ErrToolFailed is returned when a tool call completes with an error result.
var ErrToolFailed = errors.New("tool call failed")

// Session is an initialized in-process client connection to a server.
type Session struct {
	c *client.Client
}

// Connect starts an in-process client for srv and performs the MCP
// handshake.
func Connect(ctx context.Context, srv *server.MCPServer) (*Session, error) {
	c, err := client.NewInProcessClient(srv)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to start client: %w", err)
	}

	initRequest := mcplib.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcplib.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcplib.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}

	if _, err := c.Initialize(ctx, initRequest); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return &Session{c: c}, nil
}

// ListTools returns the names of the tools the server offers.
func (s *Session) ListTools(ctx context.Context) ([]string, error) {
	result, err := s.c.ListTools(ctx, mcplib.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	return names, nil
}

// Call invokes a tool and returns its text output. A result flagged as an
// error is returned as ErrToolFailed wrapping the text.
func (s *Session) Call(ctx context.Context, name string, arguments map[string]any) (string, error) {
	callRequest := mcplib.CallToolRequest{}
	callRequest.Params.Name = name
	callRequest.Params.Arguments = arguments

	result, err := s.c.CallTool(ctx, callRequest)
	if err != nil {
		return "", fmt.Errorf("failed to call tool %s: %w", name, err)
	}

	var sb strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(mcplib.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	if result.IsError {
		return "", fmt.Errorf("%w: %s: %s", ErrToolFailed, name, sb.String())
	}
	return sb.String(), nil
}

// Close shuts the client down.
func (s *Session) Close() error {
	return s.c.Close()
}
