package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/render"
	"github.com/hupe1980/agentswarm/session"
)

// ExitCommand stops the loop when entered on its own line.
const ExitCommand = "exit"

// Options configure a Driver.
type Options struct {
	// Stream selects the streaming render path.
	Stream bool
	// Debug is forwarded to the runner on every dispatch.
	Debug bool
	// ContextVariables seed the conversation.
	ContextVariables core.ContextVariables
	// History seeds the conversation with earlier messages.
	History *session.History
	// Input is read line by line. Defaults to os.Stdin.
	Input io.Reader
	// Output receives the transcript. Defaults to os.Stdout.
	Output io.Writer
	// Style decorates sender and tool names.
	Style render.Style
	// Prompt labels the input line.
	Prompt string
	// Banner is printed once when Run starts. Empty disables it.
	Banner string
	// Logger receives driver events.
	Logger logging.Logger
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// Driver runs the conversation loop. A Driver is single-threaded: Run and
// Turn must not be called concurrently.
type Driver struct {
	runner  core.Runner
	agent   *core.Agent
	vars    core.ContextVariables
	history *session.History
	state   State
	opts    Options
}

// New creates a driver that starts with agent as the current agent.
func New(runner core.Runner, agent *core.Agent, optFns ...func(o *Options)) *Driver {
	opts := Options{
		Input:  os.Stdin,
		Output: os.Stdout,
		Style:  render.PlainStyle,
		Prompt: "User",
		Banner: "Starting Swarm CLI 🐝",
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.History == nil {
		opts.History = session.NewHistory()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Driver{
		runner:  runner,
		agent:   agent,
		vars:    opts.ContextVariables,
		history: opts.History,
		state:   StateAwaitingInput,
		opts:    opts,
	}
}

// Agent returns the current agent.
func (d *Driver) Agent() *core.Agent { return d.agent }

// ContextVariables returns the current context variables.
func (d *Driver) ContextVariables() core.ContextVariables { return d.vars }

// History returns the conversation history.
func (d *Driver) History() *session.History { return d.history }

// State returns the current loop state.
func (d *Driver) State() State { return d.state }

// Run reads operator lines until the exit command, end of input or a runner
// failure. It returns nil on a clean stop and an error wrapping
// core.ErrRunnerFailure when a turn fails.
func (d *Driver) Run(ctx context.Context) error {
	if d.opts.Banner != "" {
		fmt.Fprintln(d.opts.Output, d.opts.Banner)
	}

	reader := bufio.NewReader(d.opts.Input)

	for {
		d.transition(StateAwaitingInput)
		fmt.Fprint(d.opts.Output, d.opts.Style.PromptLabel(d.opts.Prompt))

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			d.transition(StateStopped)
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err != nil && line == "" {
			d.opts.Logger.Debug("repl.input.eof")
			d.transition(StateStopped)
			return nil
		}

		input := strings.TrimRight(line, "\r\n")
		if strings.EqualFold(strings.TrimSpace(input), ExitCommand) {
			d.opts.Logger.Debug("repl.exit")
			d.transition(StateStopped)
			return nil
		}
		if _, err := d.Turn(ctx, input); err != nil {
			d.opts.Logger.Error("repl.turn.failed", "agent", d.agent.String(), "error", err.Error())
			return err
		}
	}
}

// Turn dispatches one operator utterance, renders the result and advances
// the conversation. On failure the driver stops; the user message stays in
// the history.
func (d *Driver) Turn(ctx context.Context, input string) (*core.Response, error) {
	start := time.Now()

	d.transition(StateDispatching)
	if err := d.history.Append(core.NewUserMessage(input)); err != nil {
		return nil, d.fail(err)
	}

	req := core.RunRequest{
		Agent:            d.agent,
		Messages:         d.history.Messages(),
		ContextVariables: d.vars,
		Stream:           d.opts.Stream,
		Debug:            d.opts.Debug,
	}

	var (
		resp *core.Response
		err  error
	)
	if d.opts.Stream {
		resp, err = d.stream(ctx, req)
	} else {
		resp, err = d.batch(ctx, req)
	}
	if err != nil {
		return nil, d.fail(err)
	}
	if resp == nil || resp.Agent == nil {
		return nil, d.fail(errors.New("runner returned no usable result"))
	}

	d.transition(StateAdvancing)
	if err := d.history.Append(resp.Messages...); err != nil {
		return nil, d.fail(err)
	}

	if resp.Agent != d.agent {
		d.opts.Logger.Info("repl.agent.switched", "from_agent", d.agent.Name, "to_agent", resp.Agent.Name)
	}
	d.agent = resp.Agent

	if resp.ContextVariables != nil {
		d.vars = resp.ContextVariables
	}

	d.opts.Logger.Debug(
		"repl.turn.complete",
		"agent", d.agent.Name,
		"messages", len(resp.Messages),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	d.transition(StateAwaitingInput)

	return resp, nil
}

func (d *Driver) stream(ctx context.Context, req core.RunRequest) (*core.Response, error) {
	d.transition(StateStreaming)

	s, err := d.runner.RunStream(ctx, req)
	if err != nil {
		return nil, err
	}

	return render.ProcessStream(s, d.opts.Output, d.opts.Style)
}

func (d *Driver) batch(ctx context.Context, req core.RunRequest) (*core.Response, error) {
	d.transition(StateBatch)

	resp, err := d.runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		render.PrintMessages(d.opts.Output, resp.Messages, d.opts.Style)
	}

	return resp, nil
}

func (d *Driver) fail(err error) error {
	d.transition(StateStopped)
	return fmt.Errorf("%w: %w", core.ErrRunnerFailure, err)
}

func (d *Driver) transition(to State) {
	from := d.state
	d.state = to
	if d.opts.OnTransition != nil && from != to {
		d.opts.OnTransition(from, to)
	}
}
