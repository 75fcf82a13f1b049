package core

import (
	"context"

	"github.com/hupe1980/agentswarm/logging"
)

// ToolContext provides the constrained surface a tool sees while it runs.
//
// A tool call gets its own ToolContext, built by the runner from the active
// agent and the context variables as they stand when the call is dispatched.
// Through it a tool can:
//   - honour cancellation via Context
//   - read context variables via Var or ContextVariables
//   - log with the run's logger, tagged by the caller
//
// The variables are a private copy. Writes to it are discarded; a tool that
// wants to change the conversation state returns a Result whose
// ContextVariables are merged by the runner before the next call of the batch.
//
//	func lookup(tc *core.ToolContext, args map[string]any) (any, error) {
//		user, _ := tc.Var("user_name")
//		tc.Logger().Debug("lookup", "user", user, "call", tc.FunctionCallID())
//		return core.Result{Value: "ok", ContextVariables: core.ContextVariables{"seen": true}}, nil
//	}
type ToolContext struct {
	ctx            context.Context
	functionCallID string
	agentName      string
	vars           ContextVariables
	logger         logging.Logger
}

// NewToolContext constructs a tool context for a single function call. The
// context variables are copied so tools cannot mutate the caller's map;
// tools report changes through Result.ContextVariables instead.
func NewToolContext(ctx context.Context, functionCallID, agentName string, vars ContextVariables, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{
		ctx:            ctx,
		functionCallID: functionCallID,
		agentName:      agentName,
		vars:           vars.Clone(),
		logger:         logger,
	}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// FunctionCallID returns the tool call identifier being served.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// AgentName returns the name of the agent that issued the call.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// ContextVariables returns the tool's private copy of the context variables.
func (tc *ToolContext) ContextVariables() ContextVariables { return tc.vars }

// Var returns a single context variable.
func (tc *ToolContext) Var(key string) (any, bool) {
	v, ok := tc.vars[key]
	return v, ok
}

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }
