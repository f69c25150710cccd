package builtin

import (
	"fmt"
	"math"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"spinplex/internal/spinner"
)

// GetArgs extracts the arguments map from a CallToolRequest.
// A request without arguments yields an empty map.
func GetArgs(req mcplib.CallToolRequest) (map[string]any, error) {
	if req.Params.Arguments == nil {
		return map[string]any{}, nil
	}
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid arguments format")
	}
	return args, nil
}

// GetStringArg extracts a required string argument from the arguments map.
func GetStringArg(args map[string]any, name string) (string, error) {
	val, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%s argument is required and must be a string", name)
	}
	return val, nil
}

// GetOptionalStringArg returns defaultVal if the argument is missing, empty
// or not a string.
func GetOptionalStringArg(args map[string]any, name string, defaultVal string) string {
	if val, ok := args[name].(string); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntArg extracts a required integer argument. JSON numbers arrive as
// float64; fractional values are rejected.
func GetIntArg(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%s argument must be an integer", name)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s argument is required and must be an integer", name)
	}
}

// GetOptionalIntArg returns defaultVal when the argument is absent.
func GetOptionalIntArg(args map[string]any, name string, defaultVal int) (int, error) {
	if _, ok := args[name]; !ok {
		return defaultVal, nil
	}
	return GetIntArg(args, name)
}

// GetIDArg extracts a required entity id.
func GetIDArg(args map[string]any) (spinner.ID, error) {
	n, err := GetIntArg(args, "id")
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("id must not be negative")
	}
	return spinner.ID(n), nil
}
