package testutil

import (
	"errors"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationBuilder(t *testing.T) {
	msgs := NewConversation().
		User("hi").
		Assistant("A", "", Call("f", `{}`), Call("g", `{}`)).
		Tool("g", "G").
		Tool("f", "F").
		Messages()

	require.Len(t, msgs, 4)
	assert.Equal(t, "call_1", msgs[1].ToolCalls[0].ID)
	assert.Equal(t, "call_2", msgs[1].ToolCalls[1].ID)
	assert.Equal(t, "call_2", msgs[2].ToolCallID)
	assert.Equal(t, "call_1", msgs[3].ToolCallID)

	for _, m := range msgs {
		assert.NoError(t, m.Validate())
	}

	assert.Panics(t, func() { NewConversation().Tool("f", "F") })
}

func TestStreamBuilder(t *testing.T) {
	boom := errors.New("boom")
	s := NewStream().Start().Text("A", "x", "y").ToolCall("A", "f", "{}").End().Fail(boom).Build()

	var n int
	for s.Next() {
		n++
	}
	assert.Equal(t, 6, n)
	assert.ErrorIs(t, s.Err(), boom)

	chunks := NewStream().Response(&core.Response{}).Chunks()
	require.Len(t, chunks, 1)
	assert.True(t, chunks[0].IsTerminal())
}
