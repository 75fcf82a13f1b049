package core

import (
	"fmt"
	"strings"
	"unicode"
)

// Handoff is a tool whose only effect is to return its target agent, which
// the runner recognizes as a request to switch the current agent.
type Handoff struct {
	name        string
	description string
	target      *Agent
}

// NewHandoff creates a handoff tool to target. Empty name and description
// default to "transfer_to_<snake_case target name>" and a generic sentence.
func NewHandoff(target *Agent, name, description string) *Handoff {
	if name == "" {
		name = HandoffToolName(target.Name)
	}
	if description == "" {
		description = fmt.Sprintf("Transfer the conversation to %s.", target.Name)
	}
	return &Handoff{name: name, description: description, target: target}
}

// HandoffToolName derives the default handoff tool name for an agent name.
func HandoffToolName(agentName string) string {
	return "transfer_to_" + snakeCase(agentName)
}

// Name implements Tool.
func (h *Handoff) Name() string { return h.name }

// Description implements Tool.
func (h *Handoff) Description() string { return h.description }

// Parameters implements Tool. Handoffs take no arguments.
func (h *Handoff) Parameters() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

// Kind implements Tool.
func (h *Handoff) Kind() ToolKind { return ToolKindHandoff }

// Target returns the agent control is handed to.
func (h *Handoff) Target() *Agent { return h.target }

// Call implements Tool.
func (h *Handoff) Call(tc *ToolContext, _ map[string]any) (any, error) {
	tc.Logger().Info("tool.handoff.request", "from_agent", tc.AgentName(), "to_agent", h.target.Name, "function_call_id", tc.FunctionCallID())
	return h.target, nil
}

func snakeCase(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
