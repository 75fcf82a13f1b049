package core

import (
	"encoding/json"
	"fmt"
)

// ToolKind declares what a tool's return value means to the runner.
type ToolKind int

const (
	// ToolKindFunction tools return ordinary values that are serialized into
	// a tool message.
	ToolKindFunction ToolKind = iota
	// ToolKindHandoff tools return an *Agent that becomes the current agent.
	ToolKindHandoff
)

// String returns the string representation of the tool kind.
func (k ToolKind) String() string {
	switch k {
	case ToolKindFunction:
		return "function"
	case ToolKindHandoff:
		return "handoff"
	default:
		return "unknown"
	}
}

// Tool is a callable reachable from an agent's tool list.
//
// Call receives arguments already decoded from the tool call's JSON string.
// Its return value is interpreted by Interpret: an *Agent signals a handoff,
// anything else is serialized into the tool message. Tools that fail in an
// expected way (missing upstream data, bad input) should return a structured
// payload such as {"error": "..."} rather than an error.
type Tool interface {
	// Name returns the unique identifier exposed to the model.
	Name() string
	// Description tells the model when to use the tool.
	Description() string
	// Parameters returns the JSON schema of the accepted arguments.
	Parameters() map[string]any
	// Kind declares whether the tool is an ordinary function or a handoff.
	Kind() ToolKind
	// Call executes the tool.
	Call(toolCtx *ToolContext, args map[string]any) (any, error)
}

// Result is the normalized outcome of a single tool call.
type Result struct {
	// Value is the text recorded as the tool message content.
	Value string
	// Agent is set when the tool handed off control.
	Agent *Agent
	// ContextVariables are merged into the run's context variables.
	ContextVariables ContextVariables
}

// IsHandoff reports whether the result switches the current agent.
func (r Result) IsHandoff() bool { return r.Agent != nil }

// Interpret applies the tool dispatch contract to a raw tool return value.
func Interpret(value any) (Result, error) {
	switch v := value.(type) {
	case Result:
		return v, nil
	case *Result:
		if v == nil {
			return Result{}, nil
		}
		return *v, nil
	case *Agent:
		if v == nil {
			return Result{}, fmt.Errorf("handoff to nil agent")
		}
		return Result{Value: handoffMarker(v), Agent: v}, nil
	case string:
		return Result{Value: v}, nil
	case nil:
		return Result{}, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Result{}, fmt.Errorf("failed to serialize tool result of type %T: %w", value, err)
		}
		return Result{Value: string(b)}, nil
	}
}

// ErrorPayload encodes a tool failure the way tools are expected to report
// them: a JSON object with a single "error" field.
func ErrorPayload(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}

func handoffMarker(a *Agent) string {
	b, _ := json.Marshal(map[string]string{"assistant": a.Name})
	return string(b)
}
