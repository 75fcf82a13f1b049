package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edge is a named handoff from one agent to another.
type Edge struct {
	From     string
	To       string
	ToolName string
}

// Graph is the immutable handoff adjacency structure of a set of agents. It is
// produced once by GraphBuilder.Build and can be inspected independently of
// any conversation.
type Graph struct {
	agents map[string]*Agent
	order  []string
	edges  map[string][]Edge
}

// Agent returns the agent registered under name.
func (g *Graph) Agent(name string) (*Agent, bool) {
	a, ok := g.agents[name]
	return a, ok
}

// Agents returns all agents in registration order.
func (g *Graph) Agents() []*Agent {
	out := make([]*Agent, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.agents[name])
	}
	return out
}

// Edges returns the outgoing handoffs of an agent in declaration order.
func (g *Graph) Edges(from string) []Edge {
	return append([]Edge(nil), g.edges[from]...)
}

// Reachable returns the names of all agents reachable from start through
// handoffs, in breadth-first order, excluding start itself unless a cycle
// leads back to it.
func (g *Graph) Reachable(start string) []string {
	var out []string
	seen := map[string]bool{}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.edges[cur] {
			if seen[e.To] {
				continue
			}
			seen[e.To] = true
			out = append(out, e.To)
			queue = append(queue, e.To)
		}
	}
	return out
}

// GraphBuilder collects agents and handoff edges during setup.
type GraphBuilder struct {
	agents map[string]*Agent
	order  []string
	edges  []Edge
	descs  map[Edge]string
	errs   []error
	built  bool
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{agents: map[string]*Agent{}, descs: map[Edge]string{}}
}

// Add registers agents. Duplicate names are reported by Build.
func (b *GraphBuilder) Add(agents ...*Agent) *GraphBuilder {
	for _, a := range agents {
		if a == nil {
			b.errs = append(b.errs, errors.New("nil agent"))
			continue
		}
		if _, dup := b.agents[a.Name]; dup {
			b.errs = append(b.errs, fmt.Errorf("duplicate agent %q", a.Name))
			continue
		}
		b.agents[a.Name] = a
		b.order = append(b.order, a.Name)
	}
	return b
}

// Handoff declares that from may transfer control to to through a tool named
// toolName. Empty toolName and description fall back to NewHandoff defaults.
func (b *GraphBuilder) Handoff(from, to, toolName, description string) *GraphBuilder {
	if toolName == "" {
		toolName = HandoffToolName(to)
	}
	e := Edge{From: from, To: to, ToolName: toolName}
	b.edges = append(b.edges, e)
	b.descs[e] = description
	return b
}

// Build validates the declared edges, wires one Handoff tool per edge into
// the source agent's tool list and returns the resulting Graph.
func (b *GraphBuilder) Build() (*Graph, error) {
	if b.built {
		return nil, errors.New("graph already built")
	}
	errs := append([]error(nil), b.errs...)

	for _, e := range b.edges {
		if _, ok := b.agents[e.From]; !ok {
			errs = append(errs, fmt.Errorf("handoff %s: unknown source agent %q", e.ToolName, e.From))
		}
		if _, ok := b.agents[e.To]; !ok {
			errs = append(errs, fmt.Errorf("handoff %s: unknown target agent %q", e.ToolName, e.To))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	names := map[string]map[string]bool{}
	for _, name := range b.order {
		names[name] = map[string]bool{}
		for _, t := range b.agents[name].Tools {
			names[name][t.Name()] = true
		}
	}

	g := &Graph{agents: map[string]*Agent{}, order: append([]string(nil), b.order...), edges: map[string][]Edge{}}
	for name, a := range b.agents {
		g.agents[name] = a
	}

	for _, e := range b.edges {
		if names[e.From][e.ToolName] {
			errs = append(errs, fmt.Errorf("agent %q already has a tool named %q", e.From, e.ToolName))
			continue
		}
		names[e.From][e.ToolName] = true
		g.edges[e.From] = append(g.edges[e.From], e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, e := range b.edges {
		b.agents[e.From].AddTools(NewHandoff(b.agents[e.To], e.ToolName, b.descs[e]))
	}
	b.built = true

	return g, nil
}

// String renders the graph as sorted "from -> to (tool)" lines.
func (g *Graph) String() string {
	var lines []string
	for _, name := range g.order {
		for _, e := range g.edges[name] {
			lines = append(lines, fmt.Sprintf("%s -> %s (%s)", e.From, e.To, e.ToolName))
		}
	}
	sort.Strings(lines)
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}
