package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/agentswarm/config"
	"github.com/hupe1980/agentswarm/toolkit"
)

// GraphCmd prints the handoff graph of an agents file.
type GraphCmd struct {
	Agents string `arg:"" help:"Agents file (YAML)." type:"existingfile"`
}

// Run prints the graph edges followed by the agents reachable from the
// starting agent.
func (c *GraphCmd) Run(out io.Writer) error {
	f, err := config.LoadAgentsFile(c.Agents)
	if err != nil {
		return err
	}

	reg, err := toolkit.NewRegistry()
	if err != nil {
		return err
	}

	setup, err := f.Build(reg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%sreachable from %s: %s\n",
		setup.Graph.String(),
		setup.Start.Name,
		strings.Join(setup.Graph.Reachable(setup.Start.Name), ", "),
	)
	return err
}
