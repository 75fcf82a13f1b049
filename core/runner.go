package core

import "context"

// Response is the final result of one runner invocation.
type Response struct {
	// Messages holds only the messages produced by this invocation.
	Messages []Message `json:"messages"`
	// Agent is the agent that should handle the next turn.
	Agent *Agent `json:"-"`
	// ContextVariables is the runner's updated copy; nil means unchanged.
	ContextVariables ContextVariables `json:"context_variables,omitempty"`
}

// RunRequest is the input of a runner invocation.
type RunRequest struct {
	Agent            *Agent
	Messages         []Message
	ContextVariables ContextVariables
	Stream           bool
	Debug            bool
}

// Runner executes one conversational turn on behalf of the driver: it calls
// the model, executes tools and applies handoffs until the active agent
// produces a reply without tool calls.
//
// Run returns the complete result. RunStream returns a stream of chunks that
// ends with exactly one terminal chunk carrying the same result.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*Response, error)
	RunStream(ctx context.Context, req RunRequest) (ChunkStream, error)
}
