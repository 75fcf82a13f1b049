package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherTool() *tool.FunctionTool {
	return tool.NewFunctionTool("get_weather", "Get the weather", map[string]any{
		"type":       "object",
		"properties": map[string]any{"location": map[string]any{"type": "string"}},
		"required":   []string{"location"},
	}, func(_ *core.ToolContext, args map[string]any) (any, error) {
		return map[string]any{"location": args["location"], "temperature": "65"}, nil
	})
}

func userTurn(text string) []core.Message { return []core.Message{core.NewUserMessage(text)} }

func TestRun_PlainReply(t *testing.T) {
	agent := core.NewAgent("Agent", "You are a helpful agent.")
	m := model.NewScriptedModel(core.NewAssistantMessage("", "Hello!"))

	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("Hi")})
	require.NoError(t, err)

	require.Len(t, resp.Messages, 1)
	assert.Equal(t, core.NewAssistantMessage("Agent", "Hello!"), resp.Messages[0])
	assert.Same(t, agent, resp.Agent)

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "You are a helpful agent.", reqs[0].Instructions)
	assert.Equal(t, userTurn("Hi"), reqs[0].Messages)
	assert.False(t, reqs[0].Stream)
}

func TestRun_ToolCallRoundTrip(t *testing.T) {
	agent := core.NewAgent("Weather Agent", "You are a helpful agent.", weatherTool())
	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("call_1", "get_weather", `{"location":"NYC"}`)),
		core.NewAssistantMessage("", "It is 65 in NYC."),
	)

	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("weather?")})
	require.NoError(t, err)

	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "Weather Agent", resp.Messages[0].Sender)
	assert.Equal(t, core.RoleTool, resp.Messages[1].Role)
	assert.Equal(t, "call_1", resp.Messages[1].ToolCallID)
	assert.JSONEq(t, `{"location":"NYC","temperature":"65"}`, resp.Messages[1].Content)
	assert.Equal(t, "It is 65 in NYC.", resp.Messages[2].Content)

	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.Len(t, reqs[1].Messages, 3)
	require.Len(t, reqs[0].Tools, 1)
	assert.Equal(t, "get_weather", reqs[0].Tools[0].Function.Name)
}

func TestRun_Handoff(t *testing.T) {
	agentA := core.NewAgent("Agent A", "You are a helpful agent.")
	agentB := core.NewAgent("Agent B", "Only speak in Haikus.")
	_, err := core.NewGraphBuilder().Add(agentA, agentB).Handoff("Agent A", "Agent B", "", "").Build()
	require.NoError(t, err)

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("call_1", "transfer_to_agent_b", `{}`)),
		core.NewAssistantMessage("", "Haiku time now"),
	)

	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agentA, Messages: userTurn("talk to B")})
	require.NoError(t, err)

	assert.Same(t, agentB, resp.Agent)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "Agent A", resp.Messages[0].Sender)
	assert.JSONEq(t, `{"assistant":"Agent B"}`, resp.Messages[1].Content)
	assert.Equal(t, "Agent B", resp.Messages[2].Sender)

	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Only speak in Haikus.", reqs[1].Instructions)
}

func TestRun_ToolFailuresAreReportedToModel(t *testing.T) {
	failing := tool.NewFunctionTool("fetch", "Fails", nil, func(*core.ToolContext, map[string]any) (any, error) {
		return nil, errors.New("upstream down")
	})
	panicking := tool.NewFunctionTool("explode", "Panics", nil, func(*core.ToolContext, map[string]any) (any, error) {
		panic("kaboom")
	})
	agent := core.NewAgent("A", "", failing, panicking, weatherTool())

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "",
			core.NewToolCall("c1", "missing", `{}`),
			core.NewToolCall("c2", "fetch", `{}`),
			core.NewToolCall("c3", "explode", `{}`),
			core.NewToolCall("c4", "get_weather", `{"location":`),
			core.NewToolCall("c5", "get_weather", `{}`),
		),
		core.NewAssistantMessage("", "Sorry."),
	)

	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("go")})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 7)

	tools := resp.Messages[1:6]
	assert.Equal(t, "Error: Tool missing not found.", tools[0].Content)
	assert.JSONEq(t, `{"error":"upstream down"}`, tools[1].Content)
	assert.Contains(t, tools[2].Content, "panic recovered: kaboom")
	assert.Contains(t, tools[3].Content, "malformed tool arguments")
	assert.Contains(t, tools[4].Content, "parameter validation failed")

	for i, m := range tools {
		assert.Equal(t, core.RoleTool, m.Role)
		assert.Equal(t, resp.Messages[0].ToolCalls[i].ID, m.ToolCallID)
	}
}

func TestRun_ContextVariables(t *testing.T) {
	agent := core.NewAgent("A", "", tool.NewContextVariablesTool())
	agent.Instructions = core.NewInstructionFromFunc(func(vars core.ContextVariables) (string, error) {
		return "Help " + vars["user"].(string) + " in " + toString(vars["city"]), nil
	})

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("c1", "context_variables", `{"operation":"set","key":"city","value":"Paris"}`)),
		core.NewAssistantMessage("", "Done."),
	)

	in := core.ContextVariables{"user": "Ada"}
	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("I live in Paris"), ContextVariables: in})
	require.NoError(t, err)

	assert.Equal(t, core.ContextVariables{"user": "Ada", "city": "Paris"}, resp.ContextVariables)
	assert.Equal(t, core.ContextVariables{"user": "Ada"}, in)

	reqs := m.Requests()
	assert.Equal(t, "Help Ada in ", reqs[0].Instructions)
	assert.Equal(t, "Help Ada in Paris", reqs[1].Instructions)
}

func TestRun_StaticInstructionsSentVerbatim(t *testing.T) {
	const instructions = `Answer as JSON, e.g. {{"ok": true}}. Say "<no value>" if unsure.`
	agent := core.NewAgent("A", instructions)
	m := model.NewScriptedModel(core.NewAssistantMessage("", `{"ok": true}`))

	resp, err := New(m).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("status?")})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, instructions, m.Requests()[0].Instructions)
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func TestRun_MaxTurns(t *testing.T) {
	agent := core.NewAgent("A", "", weatherTool())
	call := core.NewAssistantMessage("", "", core.NewToolCall("", "get_weather", `{"location":"x"}`))
	m := model.NewScriptedModel(call, call, call, call)

	resp, err := New(m, func(o *Options) { o.MaxTurns = 2 }).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("loop")})
	require.NoError(t, err)
	assert.Len(t, resp.Messages, 4)
	assert.Equal(t, 2, m.Remaining())
}

func TestRun_ExecuteToolsDisabled(t *testing.T) {
	agent := core.NewAgent("A", "", weatherTool())
	m := model.NewScriptedModel(core.NewAssistantMessage("", "", core.NewToolCall("c1", "get_weather", `{"location":"x"}`)))

	resp, err := New(m, func(o *Options) { o.ExecuteTools = false }).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("hi")})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	assert.True(t, resp.Messages[0].HasToolCalls())
}

func TestRun_Errors(t *testing.T) {
	_, err := New(model.NewScriptedModel()).Run(context.Background(), core.RunRequest{})
	assert.Error(t, err)

	_, err = New(model.NewScriptedModel()).Run(context.Background(), core.RunRequest{Agent: core.NewAgent("A", "")})
	assert.ErrorIs(t, err, model.ErrScriptExhausted)
}

func collect(t *testing.T, s core.ChunkStream) []core.Chunk {
	t.Helper()
	defer s.Close()
	var out []core.Chunk
	for s.Next() {
		out = append(out, s.Current())
	}
	require.NoError(t, s.Err())
	return out
}

func TestRunStream_ChunkProtocol(t *testing.T) {
	agent := core.NewAgent("Weather Agent", "", weatherTool())
	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("c1", "get_weather", `{"location":"NYC"}`)),
		core.NewAssistantMessage("", "Sunny today"),
	)

	s, err := New(m).RunStream(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("weather?"), Stream: true})
	require.NoError(t, err)
	chunks := collect(t, s)

	require.Len(t, chunks, 9)
	assert.Equal(t, core.DelimStart, chunks[0].Delim)
	assert.Equal(t, "get_weather", chunks[1].ToolCalls[0].Function.Name)
	assert.Equal(t, "Weather Agent", chunks[1].Sender)
	assert.Empty(t, chunks[2].ToolCalls[0].Function.Name)
	assert.Equal(t, core.DelimEnd, chunks[3].Delim)
	assert.Equal(t, core.DelimStart, chunks[4].Delim)
	assert.Equal(t, "Sunny ", *chunks[5].Content)
	assert.Equal(t, "today", *chunks[6].Content)
	assert.Equal(t, core.DelimEnd, chunks[7].Delim)

	last := chunks[8]
	require.True(t, last.IsTerminal())
	assert.Same(t, agent, last.Response.Agent)
	require.Len(t, last.Response.Messages, 3)
	assert.Equal(t, "Sunny today", last.Response.Messages[2].Content)

	for _, c := range chunks[:8] {
		assert.False(t, c.IsTerminal())
	}
}

func TestRunStream_ModelErrorEndsStream(t *testing.T) {
	boom := errors.New("boom")
	m := model.NewScriptedModel().AddFunc(func(model.Request) (core.Message, error) { return core.Message{}, boom })

	s, err := New(m).RunStream(context.Background(), core.RunRequest{Agent: core.NewAgent("A", ""), Stream: true})
	require.NoError(t, err)
	defer s.Close()

	var terminal bool
	for s.Next() {
		terminal = terminal || s.Current().IsTerminal()
	}
	assert.False(t, terminal)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestRunStream_CloseEarly(t *testing.T) {
	m := model.NewScriptedModel(core.NewAssistantMessage("", "one two three four five"))

	s, err := New(m).RunStream(context.Background(), core.RunRequest{Agent: core.NewAgent("A", ""), Stream: true})
	require.NoError(t, err)

	require.True(t, s.Next())
	assert.NoError(t, s.Close())
}
