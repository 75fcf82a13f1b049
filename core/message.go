package core

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author class of a Message.
type Role string

const (
	// RoleUser marks operator input.
	RoleUser Role = "user"
	// RoleAssistant marks agent output (text and/or tool calls).
	RoleAssistant Role = "assistant"
	// RoleTool marks the result of a single tool call.
	RoleTool Role = "tool"
	// RoleSystem marks instructions; only used inside model requests.
	RoleSystem Role = "system"
)

// ToolCall is a request emitted by an assistant to invoke a named tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall is the concrete function target of a ToolCall.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON object encoding named parameters
}

// NewToolCall constructs a function tool call.
func NewToolCall(id, name, arguments string) ToolCall {
	return ToolCall{ID: id, Type: "function", Function: FunctionCall{Name: name, Arguments: arguments}}
}

// ParseArguments decodes the JSON argument object. An empty string decodes to
// an empty map.
func (tc ToolCall) ParseArguments() (map[string]any, error) {
	args := map[string]any{}
	if tc.Function.Arguments == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArguments, tc.Function.Name, err)
	}
	return args, nil
}

// Message is the conversation's unit of record. Histories are append-only.
type Message struct {
	Role       Role       `json:"role"`
	Sender     string     `json:"sender,omitempty"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"tool_name,omitempty"`
}

// NewUserMessage creates an operator message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an agent message attributed to sender.
func NewAssistantMessage(sender, content string, toolCalls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Sender: sender, Content: content, ToolCalls: toolCalls}
}

// NewToolMessage records the result of the tool call identified by toolCallID.
func NewToolMessage(toolCallID, toolName, content string) Message {
	return Message{Role: RoleTool, ToolCallID: toolCallID, ToolName: toolName, Content: content}
}

// HasToolCalls reports whether the message requests tool execution.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// Validate checks the structural invariants of a message: only assistant
// messages carry tool calls or a sender, and tool messages reference a call.
func (m Message) Validate() error {
	switch m.Role {
	case RoleAssistant:
		return nil
	case RoleUser, RoleSystem:
		if m.ToolCallID != "" {
			return fmt.Errorf("%s message must not reference a tool call", m.Role)
		}
	case RoleTool:
		if m.ToolCallID == "" {
			return fmt.Errorf("tool message requires a tool call id")
		}
	default:
		return fmt.Errorf("unknown role %q", m.Role)
	}
	if len(m.ToolCalls) > 0 {
		return fmt.Errorf("%s message must not carry tool calls", m.Role)
	}
	if m.Sender != "" {
		return fmt.Errorf("%s message must not carry a sender", m.Role)
	}
	return nil
}

// ContextVariables is an opaque key/value mapping threaded through every turn.
// The orchestration core never inspects its contents.
type ContextVariables map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (c ContextVariables) Clone() ContextVariables {
	out := make(ContextVariables, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge copies all entries of other into c, overwriting existing keys.
func (c ContextVariables) Merge(other ContextVariables) {
	for k, v := range other {
		c[k] = v
	}
}
