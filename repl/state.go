package repl

// State is a phase of the conversation loop.
type State int

const (
	// StateAwaitingInput blocks on the next operator line.
	StateAwaitingInput State = iota
	// StateDispatching records the user message and invokes the runner.
	StateDispatching
	// StateStreaming renders a chunk stream as it arrives.
	StateStreaming
	// StateBatch renders a completed result.
	StateBatch
	// StateAdvancing extends the history and swaps the current agent.
	StateAdvancing
	// StateStopped is terminal.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateDispatching:
		return "dispatching"
	case StateStreaming:
		return "streaming"
	case StateBatch:
		return "batch"
	case StateAdvancing:
		return "advancing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
