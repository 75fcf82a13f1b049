package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/agentswarm"
	"github.com/hupe1980/agentswarm/config"
	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/knowledge"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/model/anthropic"
	"github.com/hupe1980/agentswarm/model/openai"
	"github.com/hupe1980/agentswarm/tool"
	"github.com/hupe1980/agentswarm/toolkit"
)

// QdrantFlags locate the Qdrant server.
type QdrantFlags struct {
	Host   string `help:"Qdrant host." default:"localhost" env:"QDRANT_HOST"`
	Port   int    `help:"Qdrant gRPC port." default:"6334" env:"QDRANT_PORT"`
	APIKey string `name:"api-key" help:"Qdrant API key." env:"QDRANT_API_KEY"`
}

func (f QdrantFlags) store() (*knowledge.QdrantStore, error) {
	return knowledge.NewQdrantStore(func(o *knowledge.QdrantOptions) {
		o.Host = f.Host
		o.Port = f.Port
		o.APIKey = f.APIKey
	})
}

// ChatCmd runs the interactive conversation loop.
type ChatCmd struct {
	Agents   string            `short:"a" help:"Agents file (YAML). Without it a single helpful agent is used." type:"existingfile" env:"AGENTSWARM_AGENTS"`
	Provider string            `short:"p" help:"Model provider." default:"openai" enum:"openai,anthropic" env:"AGENTSWARM_PROVIDER"`
	Model    string            `short:"m" help:"Default model id (provider default when empty)." env:"AGENTSWARM_MODEL"`
	Stream   bool              `help:"Stream responses as they are generated."`
	Debug    bool              `help:"Log runner progress at info level."`
	NoColor  bool              `name:"no-color" help:"Disable ANSI colors." env:"NO_COLOR"`
	MaxTurns int               `name:"max-turns" help:"Maximum model turns per user input (0 = unlimited)." default:"25"`
	Var      map[string]string `short:"v" help:"Initial context variable (key=value)."`

	Knowledge  bool        `help:"Register the query_docs tool backed by Qdrant."`
	Collection string      `help:"Qdrant collection queried by query_docs." default:"help_center"`
	Qdrant     QdrantFlags `embed:"" prefix:"qdrant-"`
}

// Run starts the conversation.
func (c *ChatCmd) Run(ctx context.Context, cli *CLI) error {
	logger, err := cli.Logger()
	if err != nil {
		return err
	}

	var extra []core.Tool
	if c.Knowledge {
		store, err := c.Qdrant.store()
		if err != nil {
			return err
		}
		defer store.Close()

		extra = append(extra, knowledge.NewQueryDocsTool(knowledge.NewOpenAIEmbedder(), store, func(o *knowledge.QueryToolOptions) {
			o.Collection = c.Collection
		}))
	}

	reg, err := toolkit.NewRegistry(func(o *toolkit.Options) { o.Extra = extra })
	if err != nil {
		return err
	}

	start, vars, err := c.setup(reg)
	if err != nil {
		return err
	}

	m, err := c.newModel()
	if err != nil {
		return err
	}

	swarm := agentswarm.New(func(o *agentswarm.Options) {
		o.Model = m
		o.MaxTurns = c.MaxTurns
		o.Logger = logger
	})

	return swarm.RunDemoLoop(ctx, start, func(o *agentswarm.DemoOptions) {
		o.ContextVariables = vars
		o.Stream = c.Stream
		o.Debug = c.Debug
		o.NoColor = c.NoColor
		o.Output = os.Stdout
	})
}

// setup resolves the starting agent and the initial context variables.
func (c *ChatCmd) setup(reg *tool.Registry) (*core.Agent, core.ContextVariables, error) {
	var (
		start = core.NewAgent("Agent", "You are a helpful agent.")
		vars  = core.ContextVariables{}
	)

	if c.Agents != "" {
		f, err := config.LoadAgentsFile(c.Agents)
		if err != nil {
			return nil, nil, err
		}

		setup, err := f.Build(reg)
		if err != nil {
			return nil, nil, err
		}

		start, vars = setup.Start, setup.ContextVariables
	}

	for k, v := range c.Var {
		vars[k] = v
	}

	return start, vars, nil
}

func (c *ChatCmd) newModel() (model.Model, error) {
	switch c.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if c.Model != "" {
				o.Model = c.Model
			}
			o.APIKey = config.ProviderAPIKey("openai")
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if c.Model != "" {
				o.Model = anthropic.Model(c.Model)
			}
			o.APIKey = config.ProviderAPIKey("anthropic")
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", c.Provider)
	}
}
