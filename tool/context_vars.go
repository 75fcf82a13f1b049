package tool

import (
	"fmt"

	"github.com/hupe1980/agentswarm/core"
)

// ContextVariablesTool lets a model read and update the run's context
// variables. Updates are reported through core.Result so the runner merges
// them into its copy; the tool never mutates shared state directly.
type ContextVariablesTool struct {
	name        string
	description string
}

// NewContextVariablesTool creates the context variable tool.
//
// Supported operations:
//   - get: return the value of key
//   - set: set key to value
//   - list: return all variables
func NewContextVariablesTool() *ContextVariablesTool {
	return &ContextVariablesTool{
		name: "context_variables",
		description: "Reads and updates shared context variables of the conversation. " +
			"Supports operations: get, set, list.",
	}
}

// Name returns the tool identifier.
func (t *ContextVariablesTool) Name() string { return t.name }

// Description returns the tool description.
func (t *ContextVariablesTool) Description() string { return t.description }

// Kind implements core.Tool.
func (t *ContextVariablesTool) Kind() core.ToolKind { return core.ToolKindFunction }

// Parameters returns the JSON schema for tool parameters.
func (t *ContextVariablesTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type":        "string",
				"enum":        []string{"get", "set", "list"},
				"description": "The operation to perform",
			},
			"key": map[string]any{
				"type":        "string",
				"description": "Variable name for get/set operations",
			},
			"value": map[string]any{
				"description": "Value for set operations (any type)",
			},
		},
		"required": []string{"operation"},
	}
}

// Call implements core.Tool.
func (t *ContextVariablesTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	operation, _ := args["operation"].(string)

	switch operation {
	case "get":
		key, ok := args["key"].(string)
		if !ok {
			return nil, NewToolError(t.name, "key parameter is required for get operation", CodeValidation)
		}
		value, exists := toolCtx.Var(key)
		return map[string]any{"key": key, "exists": exists, "value": value}, nil
	case "set":
		key, ok := args["key"].(string)
		if !ok {
			return nil, NewToolError(t.name, "key parameter is required for set operation", CodeValidation)
		}
		value := args["value"]

		toolCtx.Logger().Debug("tool.context_variables.set", "key", key, "agent", toolCtx.AgentName())

		return core.Result{
			Value:            fmt.Sprintf("Context variable '%s' set successfully", key),
			ContextVariables: core.ContextVariables{key: value},
		}, nil
	case "list":
		return map[string]any{"variables": toolCtx.ContextVariables()}, nil
	default:
		return nil, NewToolError(t.name, fmt.Sprintf("unknown operation: %s", operation), CodeValidation)
	}
}
