package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBuilder_Build(t *testing.T) {
	manager := NewAgent("Manager", "route")
	analyst := NewAgent("Analyst", "analyze")
	writer := NewAgent("Writer", "write")

	g, err := NewGraphBuilder().
		Add(manager, analyst, writer).
		Handoff("Manager", "Analyst", "", "").
		Handoff("Analyst", "Manager", "transfer_back_to_manager", "Return to the manager.").
		Handoff("Analyst", "Writer", "", "").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"transfer_to_analyst"}, manager.ToolNames())
	assert.Equal(t, []string{"transfer_back_to_manager", "transfer_to_writer"}, analyst.ToolNames())
	assert.Empty(t, writer.ToolNames())

	got, ok := g.Agent("Analyst")
	require.True(t, ok)
	assert.Same(t, analyst, got)
	assert.Equal(t, []*Agent{manager, analyst, writer}, g.Agents())
	assert.Len(t, g.Edges("Analyst"), 2)

	assert.Equal(t, []string{"Analyst", "Manager", "Writer"}, g.Reachable("Manager"))
	assert.Empty(t, g.Reachable("Writer"))

	assert.Equal(t,
		"Analyst -> Manager (transfer_back_to_manager)\n"+
			"Analyst -> Writer (transfer_to_writer)\n"+
			"Manager -> Analyst (transfer_to_analyst)\n",
		g.String())
}

func TestGraphBuilder_Errors(t *testing.T) {
	t.Run("unknown agents", func(t *testing.T) {
		_, err := NewGraphBuilder().
			Add(NewAgent("A", "")).
			Handoff("A", "Ghost", "", "").
			Handoff("Nobody", "A", "", "").
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown target agent "Ghost"`)
		assert.Contains(t, err.Error(), `unknown source agent "Nobody"`)
	})

	t.Run("duplicate agent", func(t *testing.T) {
		_, err := NewGraphBuilder().Add(NewAgent("A", ""), NewAgent("A", "")).Build()
		assert.Error(t, err)
	})

	t.Run("duplicate tool name leaves agents untouched", func(t *testing.T) {
		a := NewAgent("A", "")
		b := NewAgent("B", "")
		_, err := NewGraphBuilder().
			Add(a, b).
			Handoff("A", "B", "", "").
			Handoff("A", "B", "", "").
			Build()
		require.Error(t, err)
		assert.Empty(t, a.Tools)
	})

	t.Run("second build", func(t *testing.T) {
		b := NewGraphBuilder().Add(NewAgent("A", ""))
		_, err := b.Build()
		require.NoError(t, err)
		_, err = b.Build()
		assert.Error(t, err)
	})
}
