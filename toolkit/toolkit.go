package toolkit

import (
	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/tool"
	"github.com/hupe1980/agentswarm/toolkit/finance"
	"github.com/hupe1980/agentswarm/toolkit/weather"
)

// Options selects the tools registered by NewRegistry.
type Options struct {
	// Finance backs the finance tools. Defaults to a client reading its API
	// key from the environment.
	Finance *finance.Client
	// Weather configures the weather tools.
	Weather []func(o *weather.Options)
	// Extra tools are registered after the built-in ones.
	Extra []core.Tool
}

// NewRegistry returns a registry holding context_variables, the weather
// tools, the finance tools and any extra tools.
func NewRegistry(optFns ...func(o *Options)) (*tool.Registry, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Finance == nil {
		opts.Finance = finance.NewClient()
	}

	tools := []core.Tool{tool.NewContextVariablesTool()}
	tools = append(tools, weather.Tools(opts.Weather...)...)
	tools = append(tools, finance.Tools(opts.Finance)...)
	tools = append(tools, opts.Extra...)

	return tool.NewRegistry(tools...)
}
