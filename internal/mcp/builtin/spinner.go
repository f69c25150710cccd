// Package builtin provides the MCP tools that drive a spinner registry.
// Tools register with mcp.DefaultToolRegistry from init.
package builtin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"spinplex/internal/mcp"
	"spinplex/internal/spinner"
)

func init() {
	register(mcp.DefaultToolRegistry)
}

// entityView is the JSON shape returned by the list tool.
type entityView struct {
	ID      spinner.ID `json:"id"`
	Kind    string     `json:"kind"`
	Text    string     `json:"text"`
	Stopped bool       `json:"stopped"`
	Style   string     `json:"style,omitempty"`
	Current *int       `json:"current,omitempty"`
	Goal    *int       `json:"goal,omitempty"`
}

func idResult(id spinner.ID) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(strconv.FormatUint(uint64(id), 10))
}

func register(r *mcp.ToolRegistry) {
	r.Register(
		mcplib.NewTool("add_spinner",
			mcplib.WithDescription("Adds a spinner and returns its id"),
			mcplib.WithString("style",
				mcplib.Description("Frame set name from the catalog. Default: dots"),
			),
			mcplib.WithString("text",
				mcplib.Description("Label shown next to the spinner"),
			),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				fs, err := deps.Catalog.Lookup(GetOptionalStringArg(args, "style", "dots"))
				if err != nil {
					return mcplib.NewToolResultError(err.Error()), nil
				}
				id, err := deps.Registry.Add(spinner.SpinnerSpec(fs, GetOptionalStringArg(args, "text", "")))
				if err != nil {
					return nil, err
				}
				return idResult(id), nil
			}
		},
	)

	r.Register(
		mcplib.NewTool("add_progress",
			mcplib.WithDescription("Adds a progress bar and returns its id"),
			mcplib.WithNumber("goal",
				mcplib.Required(),
				mcplib.Description("Value at which the bar is full"),
			),
			mcplib.WithNumber("size",
				mcplib.Description("Bar width in cells"),
			),
			mcplib.WithString("text",
				mcplib.Description("Label shown after the percentage"),
			),
			mcplib.WithString("bar",
				mcplib.Description("Bar style name from the catalog"),
			),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				goal, err := GetIntArg(args, "goal")
				if err != nil {
					return nil, err
				}
				size, err := GetOptionalIntArg(args, "size", deps.BarWidth)
				if err != nil {
					return nil, err
				}
				bar, err := deps.Catalog.LookupBar(GetOptionalStringArg(args, "bar", deps.BarStyle))
				if err != nil {
					return mcplib.NewToolResultError(err.Error()), nil
				}
				id, err := deps.Registry.Add(spinner.ProgressSpec(goal, size, GetOptionalStringArg(args, "text", ""), bar))
				if err != nil {
					return nil, err
				}
				return idResult(id), nil
			}
		},
	)

	r.Register(
		mcplib.NewTool("set_text",
			mcplib.WithDescription("Replaces the label of an entity. Unknown ids are ignored"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Entity id")),
			mcplib.WithString("text", mcplib.Required(), mcplib.Description("New label")),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				id, err := GetIDArg(args)
				if err != nil {
					return nil, err
				}
				text, err := GetStringArg(args, "text")
				if err != nil {
					return nil, err
				}
				deps.Registry.SetText(id, text)
				return mcplib.NewToolResultText("ok"), nil
			}
		},
	)

	r.Register(
		mcplib.NewTool("set_value",
			mcplib.WithDescription("Sets a progress bar value, clamped to its goal. Unknown ids are ignored"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Entity id")),
			mcplib.WithNumber("value", mcplib.Required(), mcplib.Description("New value")),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				id, err := GetIDArg(args)
				if err != nil {
					return nil, err
				}
				value, err := GetIntArg(args, "value")
				if err != nil {
					return nil, err
				}
				deps.Registry.SetValue(id, value)
				return mcplib.NewToolResultText("ok"), nil
			}
		},
	)

	r.Register(
		mcplib.NewTool("stop",
			mcplib.WithDescription("Stops an entity so it shows only its final label"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Entity id")),
		),
		idTool(func(deps *mcp.Deps, id spinner.ID) { deps.Registry.Stop(id) }),
	)

	r.Register(
		mcplib.NewTool("remove",
			mcplib.WithDescription("Removes an entity from the block"),
			mcplib.WithNumber("id", mcplib.Required(), mcplib.Description("Entity id")),
		),
		idTool(func(deps *mcp.Deps, id spinner.ID) { deps.Registry.Remove(id) }),
	)

	r.Register(
		mcplib.NewTool("get_last",
			mcplib.WithDescription("Returns the most recently added id"),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				id, err := deps.Registry.Last()
				if errors.Is(err, spinner.ErrEmpty) {
					return mcplib.NewToolResultError(err.Error()), nil
				}
				if err != nil {
					return nil, err
				}
				return idResult(id), nil
			}
		},
	)

	r.Register(
		mcplib.NewTool("list",
			mcplib.WithDescription("Lists every entity as JSON"),
		),
		func(deps *mcp.Deps) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				infos := deps.Registry.List()
				views := make([]entityView, len(infos))
				for i, info := range infos {
					views[i] = entityView{
						ID:      info.ID,
						Kind:    info.Kind.String(),
						Text:    info.Text,
						Stopped: info.Stopped,
						Style:   info.Style,
					}
					if info.Kind == spinner.KindProgress {
						views[i].Current = &info.Current
						views[i].Goal = &info.Goal
					}
				}
				data, err := json.Marshal(views)
				if err != nil {
					return nil, fmt.Errorf("failed to encode entities: %w", err)
				}
				return mcplib.NewToolResultText(string(data)), nil
			}
		},
	)
}

// idTool builds a handler for tools whose only argument is an id.
func idTool(apply func(deps *mcp.Deps, id spinner.ID)) mcp.ToolHandlerFactory {
	return func(deps *mcp.Deps) mcp.ToolHandler {
		return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
			args, err := GetArgs(req)
			if err != nil {
				return nil, err
			}
			id, err := GetIDArg(args)
			if err != nil {
				return nil, err
			}
			apply(deps, id)
			return mcplib.NewToolResultText("ok"), nil
		}
	}
}
