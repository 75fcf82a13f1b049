package runner

import (
	"context"
	"sync"

	"github.com/hupe1980/agentswarm/core"
)

// CallbackType identifies a lifecycle point of a run.
//
// Callbacks hook into the runner's turn loop without changing it. Each type
// names one point of the loop:
//   - BeforeModel/AfterModel: around every model turn
//   - BeforeTool/AfterTool: around every tool call of a batch
//   - Handoff: when a tool result switches the active agent
//
// Callbacks run synchronously on the goroutine driving the run, both for Run
// and RunStream. An error returned by a callback aborts the run and surfaces
// as the run's error.
type CallbackType string

const (
	// CallbackBeforeModel fires before each model turn, after the turn budget
	// has been acquired. Use for request auditing or rate limiting.
	CallbackBeforeModel CallbackType = "before_model"

	// CallbackAfterModel fires with the assistant message of each model turn,
	// after its sender has been set. Use for transcripts or metrics.
	CallbackAfterModel CallbackType = "after_model"

	// CallbackBeforeTool fires before a tool call is dispatched. Use for
	// argument checks or approval gates.
	CallbackBeforeTool CallbackType = "before_tool"

	// CallbackAfterTool fires with the tool message produced by a call,
	// including error and handoff messages.
	CallbackAfterTool CallbackType = "after_tool"

	// CallbackHandoff fires when the current agent changes, before the next
	// model turn addresses the new agent.
	CallbackHandoff CallbackType = "handoff"
)

// CallbackContext describes the lifecycle point a callback runs at.
//
// The runner fills the fields that apply to the callback type and leaves the
// rest zero:
//
//	before_model  Agent, ContextVariables
//	after_model   Agent, Message, ContextVariables
//	before_tool   Agent, ToolCall, ContextVariables
//	after_tool    Agent, ToolCall, Message
//	handoff       Agent, Target, ContextVariables
//
// Callbacks observe the run; they cannot redirect it other than by aborting.
type CallbackContext struct {
	// Type is the lifecycle point being executed.
	Type CallbackType
	// Agent is the current agent.
	Agent *core.Agent
	// Target is the agent taking over (CallbackHandoff).
	Target *core.Agent
	// ToolCall is the call being served (CallbackBeforeTool, CallbackAfterTool).
	ToolCall *core.ToolCall
	// Message is the assistant or tool message just produced.
	Message *core.Message
	// ContextVariables is a snapshot; changes are not applied to the run.
	ContextVariables core.ContextVariables
}

// Callback is a lifecycle hook. Returning an error aborts the run.
//
// Implementations must be safe for concurrent use when the same manager is
// shared by several runners.
type Callback interface {
	// Type returns the lifecycle point this callback is registered for.
	Type() CallbackType
	// Execute runs the hook.
	Execute(ctx context.Context, cbCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a Callback.
//
//	audit := NewFunctionCallback(CallbackBeforeTool, func(_ context.Context, c *CallbackContext) error {
//		log.Printf("%s calls %s", c.Agent.Name, c.ToolCall.Function.Name)
//		return nil
//	})
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, cbCtx *CallbackContext) error
}

// NewFunctionCallback creates a function-based callback.
func NewFunctionCallback(callbackType CallbackType, fn func(ctx context.Context, cbCtx *CallbackContext) error) *FunctionCallback {
	return &FunctionCallback{callbackType: callbackType, fn: fn}
}

// Type implements Callback.
func (c *FunctionCallback) Type() CallbackType { return c.callbackType }

// Execute implements Callback.
func (c *FunctionCallback) Execute(ctx context.Context, cbCtx *CallbackContext) error {
	return c.fn(ctx, cbCtx)
}

// CallbackManager routes lifecycle points to registered callbacks.
//
// Callbacks of one type run in registration order and the first error stops
// the chain. Registration may happen while runs are in flight; a run sees the
// callbacks registered when each lifecycle point fires.
//
//	cm := runner.NewCallbackManager(audit)
//	r := runner.New(m, func(o *runner.Options) { o.Callbacks = cm })
type CallbackManager struct {
	mu        sync.RWMutex
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates an empty manager.
func NewCallbackManager(callbacks ...Callback) *CallbackManager {
	cm := &CallbackManager{callbacks: make(map[CallbackType][]Callback)}
	for _, cb := range callbacks {
		cm.Register(cb)
	}
	return cm
}

// Register adds a callback.
func (cm *CallbackManager) Register(cb Callback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks[cb.Type()] = append(cm.callbacks[cb.Type()], cb)
}

// Execute runs the callbacks registered for cbCtx.Type. A nil manager is a
// no-op.
func (cm *CallbackManager) Execute(ctx context.Context, cbCtx *CallbackContext) error {
	if cm == nil {
		return nil
	}

	cm.mu.RLock()
	callbacks := cm.callbacks[cbCtx.Type]
	cm.mu.RUnlock()

	for _, cb := range callbacks {
		if err := cb.Execute(ctx, cbCtx); err != nil {
			return err
		}
	}

	return nil
}
