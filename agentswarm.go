// Package agentswarm provides a high-level façade for building swarm style
// multi-agent conversations: agents that answer, call tools, or hand the
// conversation off to one another. Most applications interact with this
// package by:
//  1. Declaring agents and their handoffs (core.NewAgent, core.NewGraphBuilder)
//  2. Creating a Swarm via New() over a model provider
//  3. Running single turns (Run / RunStream) or an interactive loop (RunDemoLoop)
//
// The façade delegates the turn engine to runner.Runner and the interactive
// loop to repl.Driver while keeping setup concise.
package agentswarm

import (
	"context"
	"io"
	"os"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/logging"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/model/openai"
	"github.com/hupe1980/agentswarm/render"
	"github.com/hupe1980/agentswarm/repl"
	"github.com/hupe1980/agentswarm/runner"
)

// Options configures the Swarm instance.
type Options struct {
	// Model drives every agent. Defaults to the OpenAI adapter, which reads
	// OPENAI_API_KEY from the environment.
	Model model.Model

	// MaxTurns bounds the model turns of a single run. 0 means unlimited.
	MaxTurns int

	// ExecuteTools toggles tool execution.
	ExecuteTools bool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Callbacks hook into model, tool and handoff lifecycle points.
	Callbacks *runner.CallbackManager
}

// Swarm is the high-level façade over the runner.
type Swarm struct {
	opts   Options
	runner *runner.Runner
}

// New creates a new Swarm instance with optional overrides.
func New(optFns ...func(o *Options)) *Swarm {
	opts := Options{
		MaxTurns:     25,
		ExecuteTools: true,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Model == nil {
		opts.Model = openai.NewModel()
	}

	r := runner.New(opts.Model, func(o *runner.Options) {
		o.MaxTurns = opts.MaxTurns
		o.ExecuteTools = opts.ExecuteTools
		o.Logger = opts.Logger
		o.Callbacks = opts.Callbacks
	})

	return &Swarm{opts: opts, runner: r}
}

// Runner returns the underlying runner.
func (s *Swarm) Runner() core.Runner { return s.runner }

// Run executes one conversational turn synchronously.
func (s *Swarm) Run(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVariables,
) (*core.Response, error) {
	return s.runner.Run(ctx, core.RunRequest{Agent: agent, Messages: messages, ContextVariables: vars})
}

// RunStream executes one conversational turn and streams its progress.
func (s *Swarm) RunStream(
	ctx context.Context,
	agent *core.Agent,
	messages []core.Message,
	vars core.ContextVariables,
) (core.ChunkStream, error) {
	return s.runner.RunStream(ctx, core.RunRequest{Agent: agent, Messages: messages, ContextVariables: vars, Stream: true})
}

// DemoOptions configures RunDemoLoop.
type DemoOptions struct {
	ContextVariables core.ContextVariables
	Stream           bool
	Debug            bool
	NoColor          bool
	Input            io.Reader
	Output           *os.File
	Logger           logging.Logger
}

// RunDemoLoop starts an interactive conversation on stdin/stdout with
// startingAgent. It returns nil when the operator types "exit" or input ends.
func (s *Swarm) RunDemoLoop(ctx context.Context, startingAgent *core.Agent, optFns ...func(o *DemoOptions)) error {
	opts := DemoOptions{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: s.opts.Logger,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	d := repl.New(s.runner, startingAgent, func(o *repl.Options) {
		o.Stream = opts.Stream
		o.Debug = opts.Debug
		o.ContextVariables = opts.ContextVariables
		o.Input = opts.Input
		o.Output = opts.Output
		o.Style = render.StyleFor(opts.Output, opts.NoColor)
		o.Logger = opts.Logger
	})

	return d.Run(ctx)
}
