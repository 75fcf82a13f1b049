package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/tool"
)

// executeToolCalls runs the tool calls of one assistant message sequentially
// and in order. It never fails: unknown tools, malformed arguments, tool
// errors and panics are all reported back to the model as tool messages.
//
// The returned Response holds one tool message per call, the merged context
// variable updates, and the handoff target of the last handoff, if any. The
// only error is a failing callback.
func (r *Runner) executeToolCalls(
	ctx context.Context,
	agent *core.Agent,
	calls []core.ToolCall,
	vars core.ContextVariables,
	debugEnabled bool,
) (*core.Response, error) {
	partial := &core.Response{ContextVariables: core.ContextVariables{}}
	batchStart := time.Now()

	for _, tc := range calls {
		name := tc.Function.Name

		if err := r.callback(ctx, &CallbackContext{Type: CallbackBeforeTool, Agent: agent, ToolCall: &tc, ContextVariables: vars.Clone()}); err != nil {
			return nil, err
		}

		t, ok := agent.FindTool(name)
		if !ok {
			r.logger.Warn("runner.tool.not_found", "agent", agent.Name, "tool", name)
			if err := r.appendToolMessage(ctx, agent, partial, tc, fmt.Sprintf("Error: Tool %s not found.", name)); err != nil {
				return nil, err
			}
			continue
		}

		r.debug(debugEnabled, "runner.tool.start", "agent", agent.Name, "tool", name, "arguments", tc.Function.Arguments)

		// Tools see the variables as updated by earlier calls of this batch.
		callVars := vars.Clone()
		callVars.Merge(partial.ContextVariables)

		start := time.Now()
		result, err := r.callTool(ctx, agent, t, tc, callVars)
		logging.LogToolCall(r.logger, agent.Name, name, time.Since(start), err)

		if err != nil {
			if err := r.appendToolMessage(ctx, agent, partial, tc, core.ErrorPayload(errorMessage(err))); err != nil {
				return nil, err
			}
			continue
		}

		if err := r.appendToolMessage(ctx, agent, partial, tc, result.Value); err != nil {
			return nil, err
		}
		partial.ContextVariables.Merge(result.ContextVariables)

		if result.IsHandoff() {
			partial.Agent = result.Agent
		}
	}

	r.logger.Debug(
		"runner.tools.batch.complete",
		"agent", agent.Name,
		"count", len(calls),
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)

	return partial, nil
}

// appendToolMessage records the tool message answering tc and reports it to
// the after_tool callbacks.
func (r *Runner) appendToolMessage(ctx context.Context, agent *core.Agent, partial *core.Response, tc core.ToolCall, content string) error {
	msg := core.NewToolMessage(tc.ID, tc.Function.Name, content)
	partial.Messages = append(partial.Messages, msg)
	return r.callback(ctx, &CallbackContext{Type: CallbackAfterTool, Agent: agent, ToolCall: &tc, Message: &msg})
}

// callTool parses arguments, invokes the tool with panic safety and applies
// the dispatch contract to its return value.
func (r *Runner) callTool(
	ctx context.Context,
	agent *core.Agent,
	t core.Tool,
	tc core.ToolCall,
	vars core.ContextVariables,
) (result core.Result, err error) {
	args, err := tc.ParseArguments()
	if err != nil {
		return core.Result{}, err
	}

	toolCtx := core.NewToolContext(ctx, tc.ID, agent.Name, vars, r.logger)

	var value any
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = panicError(rec)
				r.logger.Error("runner.tool.panic", "agent", agent.Name, "tool", t.Name(), "recover", rec)
			}
		}()
		value, err = t.Call(toolCtx, args)
	}()
	if err != nil {
		return core.Result{}, err
	}

	return core.Interpret(value)
}

// errorMessage extracts the message reported back to the model.
func errorMessage(err error) string {
	var toolErr *tool.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Message
	}
	return err.Error()
}

// panicError converts a recovered panic value to an error.
func panicError(r any) error { return &panicErr{val: r, stack: debug.Stack()} }

type panicErr struct {
	val   any
	stack []byte
}

func (p *panicErr) Error() string { return fmt.Sprintf("panic recovered: %v", p.val) }
