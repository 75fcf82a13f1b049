package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/model"
)

var errStreamClosed = errors.New("chunk stream closed by consumer")

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxTurns limits the number of model turns per run. 0 means unlimited.
	MaxTurns int
	// ExecuteTools toggles tool execution. When false the run stops at the
	// first assistant message, tool calls included.
	ExecuteTools bool
	// Logger receives runner events.
	Logger logging.Logger
	// Callbacks are invoked at model, tool and handoff lifecycle points.
	Callbacks *CallbackManager
}

// Runner executes conversational turns against a model. It is stateless
// between calls and safe for concurrent use as long as the model is.
type Runner struct {
	model        model.Model
	maxTurns     int
	executeTools bool
	logger       logging.Logger
	callbacks    *CallbackManager
}

var _ core.Runner = (*Runner)(nil)

// New constructs a Runner with optional overrides.
func New(m model.Model, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxTurns:     25,
		ExecuteTools: true,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Runner{
		model:        m,
		maxTurns:     opts.MaxTurns,
		executeTools: opts.ExecuteTools,
		logger:       opts.Logger,
		callbacks:    opts.Callbacks,
	}
}

// Run executes one conversational turn and returns the complete result.
func (r *Runner) Run(ctx context.Context, req core.RunRequest) (*core.Response, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return r.run(ctx, req, nil)
}

// RunStream executes one conversational turn and streams its progress. The
// returned stream must be drained or closed by the caller.
func (r *Runner) RunStream(ctx context.Context, req core.RunRequest) (core.ChunkStream, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	return core.NewChannelStream(func(emit core.Emitter) error {
		resp, err := r.run(ctx, req, &emit)
		if err != nil {
			return err
		}
		if !emit.Emit(core.ResponseChunk(resp)) {
			return errStreamClosed
		}
		return nil
	}), nil
}

func validate(req core.RunRequest) error {
	if req.Agent == nil {
		return errors.New("run request has no agent")
	}
	return nil
}

// run is the loop shared by Run and RunStream. emit is nil in batch mode.
func (r *Runner) run(ctx context.Context, req core.RunRequest, emit *core.Emitter) (*core.Response, error) {
	active := req.Agent
	vars := req.ContextVariables.Clone()
	history := append([]core.Message(nil), req.Messages...)
	initLen := len(history)
	limiter := core.NewTurnLimiter(r.maxTurns)

	r.debug(req.Debug, "runner.run.start", "agent", active.Name, "history", initLen, "stream", emit != nil)

	for {
		if !limiter.Acquire() {
			r.logger.Warn("runner.max_turns.reached", "agent", active.Name, "max_turns", r.maxTurns)
			break
		}

		msg, err := r.complete(ctx, active, history, vars, req.Debug, emit)
		if err != nil {
			return nil, err
		}
		history = append(history, msg)

		if !msg.HasToolCalls() || !r.executeTools {
			r.debug(req.Debug, "runner.turn.end", "agent", active.Name, "turn", limiter.Count())
			break
		}

		partial, err := r.executeToolCalls(ctx, active, msg.ToolCalls, vars, req.Debug)
		if err != nil {
			return nil, err
		}
		history = append(history, partial.Messages...)
		vars.Merge(partial.ContextVariables)

		if partial.Agent != nil {
			r.logger.Info("runner.handoff", "from_agent", active.Name, "to_agent", partial.Agent.Name)
			if err := r.callback(ctx, &CallbackContext{Type: CallbackHandoff, Agent: active, Target: partial.Agent, ContextVariables: vars.Clone()}); err != nil {
				return nil, err
			}
			active = partial.Agent
		}
	}

	return &core.Response{
		Messages:         history[initLen:],
		Agent:            active,
		ContextVariables: vars,
	}, nil
}

// complete performs one model turn for agent and returns its assistant message.
func (r *Runner) complete(
	ctx context.Context,
	agent *core.Agent,
	history []core.Message,
	vars core.ContextVariables,
	debug bool,
	emit *core.Emitter,
) (core.Message, error) {
	instructions, err := agent.Instructions.Resolve(vars)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to resolve instructions for %s: %w", agent.Name, err)
	}

	req := model.Request{
		Model:        agent.Model,
		Instructions: instructions,
		Messages:     history,
		Tools:        model.ToolDefinitions(agent.Tools),
		Stream:       emit != nil,
	}

	r.debug(debug, "runner.model.request", "agent", agent.Name, "messages", len(history), "tools", agent.ToolNames())

	if err := r.callback(ctx, &CallbackContext{Type: CallbackBeforeModel, Agent: agent, ContextVariables: vars.Clone()}); err != nil {
		return core.Message{}, err
	}

	if emit != nil && !emit.Emit(core.DelimChunk(core.DelimStart)) {
		return core.Message{}, errStreamClosed
	}

	start := time.Now()
	respCh, errCh := r.model.Generate(ctx, req)

	var final *model.Response
	for resp := range respCh {
		if !resp.Partial {
			resp := resp
			final = &resp
			continue
		}
		if emit == nil {
			continue
		}
		if c, ok := deltaChunk(agent.Name, resp.Message); ok && !emit.Emit(c) {
			go drain(respCh)
			return core.Message{}, errStreamClosed
		}
	}

	err = <-errCh
	logging.LogModelCall(r.logger, agent.Name, r.model.Info().Name, time.Since(start), err)
	if err != nil {
		return core.Message{}, fmt.Errorf("model call for %s failed: %w", agent.Name, err)
	}
	if final == nil {
		return core.Message{}, fmt.Errorf("model call for %s: %w", agent.Name, core.ErrNoResponse)
	}

	if emit != nil && !emit.Emit(core.DelimChunk(core.DelimEnd)) {
		return core.Message{}, errStreamClosed
	}

	msg := final.Message
	msg.Role = core.RoleAssistant
	msg.Sender = agent.Name

	if err := r.callback(ctx, &CallbackContext{Type: CallbackAfterModel, Agent: agent, Message: &msg, ContextVariables: vars.Clone()}); err != nil {
		return core.Message{}, err
	}

	return msg, nil
}

// deltaChunk converts a partial model message into a sender-tagged chunk.
func deltaChunk(sender string, delta core.Message) (core.Chunk, bool) {
	if delta.Content == "" && len(delta.ToolCalls) == 0 {
		return core.Chunk{}, false
	}
	c := core.Chunk{Sender: sender, ToolCalls: delta.ToolCalls}
	if delta.Content != "" {
		content := delta.Content
		c.Content = &content
	}
	return c, true
}

func drain(ch <-chan model.Response) {
	for range ch {
	}
}

// callback runs the registered callbacks and wraps their failure.
func (r *Runner) callback(ctx context.Context, cbCtx *CallbackContext) error {
	if err := r.callbacks.Execute(ctx, cbCtx); err != nil {
		return fmt.Errorf("%s callback failed: %w", cbCtx.Type, err)
	}
	return nil
}

func (r *Runner) debug(enabled bool, msg string, args ...any) {
	if enabled {
		r.logger.Info(msg, args...)
		return
	}
	r.logger.Debug(msg, args...)
}
