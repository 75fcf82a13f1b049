package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/tool"
	"gopkg.in/yaml.v3"
)

// AgentsFile is the YAML representation of an agent graph.
type AgentsFile struct {
	Start            string         `yaml:"start"`
	Model            string         `yaml:"model,omitempty"`
	ContextVariables map[string]any `yaml:"context_variables,omitempty"`
	Agents           []AgentSpec    `yaml:"agents"`
}

// AgentSpec declares one agent.
type AgentSpec struct {
	Name         string        `yaml:"name"`
	Instructions string        `yaml:"instructions"`
	Template     bool          `yaml:"template,omitempty"`
	Model        string        `yaml:"model,omitempty"`
	Tools        []string      `yaml:"tools,omitempty"`
	Handoffs     []HandoffSpec `yaml:"handoffs,omitempty"`
}

// HandoffSpec declares a handoff edge from the enclosing agent.
type HandoffSpec struct {
	To          string `yaml:"to"`
	Tool        string `yaml:"tool,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Setup is the wired result of an agents file.
type Setup struct {
	Graph            *core.Graph
	Start            *core.Agent
	ContextVariables core.ContextVariables
}

// LoadAgentsFile reads, expands and parses an agents file.
func LoadAgentsFile(path string) (*AgentsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents file: %w", err)
	}
	return ParseAgents(data)
}

// ParseAgents expands ${VAR} references and parses an agents document.
func ParseAgents(data []byte) (*AgentsFile, error) {
	var f AgentsFile
	if err := yaml.Unmarshal([]byte(ExpandEnv(string(data))), &f); err != nil {
		return nil, fmt.Errorf("failed to parse agents file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the document for structural errors.
func (f *AgentsFile) Validate() error {
	if len(f.Agents) == 0 {
		return errors.New("agents file declares no agents")
	}

	var errs []error
	names := map[string]bool{}
	for i, a := range f.Agents {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("agent %d has no name", i))
			continue
		}
		names[a.Name] = true
		for _, h := range a.Handoffs {
			if h.To == "" {
				errs = append(errs, fmt.Errorf("agent %q declares a handoff without target", a.Name))
			}
		}
	}

	if f.Start != "" && !names[f.Start] {
		errs = append(errs, fmt.Errorf("start agent %q is not declared", f.Start))
	}

	return errors.Join(errs...)
}

// Build creates the agents, resolves their tools from reg and wires the
// handoff graph. The start agent defaults to the first declared agent.
func (f *AgentsFile) Build(reg *tool.Registry) (*Setup, error) {
	if reg == nil {
		reg, _ = tool.NewRegistry()
	}

	b := core.NewGraphBuilder()
	for _, spec := range f.Agents {
		tools, err := reg.Resolve(spec.Tools...)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", spec.Name, err)
		}

		a := core.NewAgent(spec.Name, spec.Instructions, tools...)
		if spec.Template {
			if a.Instructions, err = core.NewInstructionFromTemplate(spec.Instructions); err != nil {
				return nil, fmt.Errorf("agent %q: %w", spec.Name, err)
			}
		}
		a.Model = spec.Model
		if a.Model == "" {
			a.Model = f.Model
		}
		b.Add(a)
	}

	for _, spec := range f.Agents {
		for _, h := range spec.Handoffs {
			b.Handoff(spec.Name, h.To, h.Tool, h.Description)
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build agent graph: %w", err)
	}

	startName := f.Start
	if startName == "" {
		startName = f.Agents[0].Name
	}
	start, _ := g.Agent(startName)

	return &Setup{
		Graph:            g,
		Start:            start,
		ContextVariables: core.ContextVariables(f.ContextVariables).Clone(),
	}, nil
}
