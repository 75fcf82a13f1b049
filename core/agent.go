package core

// Agent is a named policy bundle: instructions plus an ordered list of tools.
//
// Agents are created once at process start and referenced by pointer for the
// lifetime of a conversation; the core never copies them. Identity is the
// Name. Tool lists are composed during setup (see GraphBuilder) and must not
// be mutated once a conversation has started.
type Agent struct {
	// Name is the stable identifier shown as the sender of assistant messages.
	Name string
	// Model optionally overrides the runner's default model for this agent.
	Model string
	// Instructions are resolved against the context variables on every turn.
	Instructions Instruction
	// Tools are offered to the model in order.
	Tools []Tool
}

// NewAgent creates an agent with static instructions.
func NewAgent(name, instructions string, tools ...Tool) *Agent {
	return &Agent{
		Name:         name,
		Instructions: NewInstructionFromText(instructions),
		Tools:        tools,
	}
}

// AddTools appends tools to the agent. Intended for setup-time composition only.
func (a *Agent) AddTools(tools ...Tool) {
	a.Tools = append(a.Tools, tools...)
}

// FindTool returns the tool registered under name.
func (a *Agent) FindTool(name string) (Tool, bool) {
	for _, t := range a.Tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// ToolNames returns the names of the agent's tools in order.
func (a *Agent) ToolNames() []string {
	names := make([]string, 0, len(a.Tools))
	for _, t := range a.Tools {
		names = append(names, t.Name())
	}
	return names
}

// String implements fmt.Stringer.
func (a *Agent) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.Name
}
