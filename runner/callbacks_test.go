package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbacks_Lifecycle(t *testing.T) {
	english := core.NewAgent("English Agent", "You only speak English.", weatherTool())
	spanish := core.NewAgent("Spanish Agent", "You only speak Spanish.")
	_, err := core.NewGraphBuilder().Add(english, spanish).Handoff(english.Name, spanish.Name, "", "").Build()
	require.NoError(t, err)

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "",
			core.NewToolCall("c1", "get_weather", `{"location":"Madrid"}`),
			core.NewToolCall("c2", "transfer_to_spanish_agent", `{}`),
		),
		core.NewAssistantMessage("", "¡Hola!"),
	)

	var trace []string
	record := func(_ context.Context, c *CallbackContext) error {
		entry := string(c.Type) + ":" + c.Agent.Name
		switch {
		case c.Target != nil:
			entry += "->" + c.Target.Name
		case c.ToolCall != nil:
			entry += ":" + c.ToolCall.Function.Name
		}
		trace = append(trace, entry)
		return nil
	}

	cm := NewCallbackManager()
	for _, typ := range []CallbackType{CallbackBeforeModel, CallbackAfterModel, CallbackBeforeTool, CallbackAfterTool, CallbackHandoff} {
		cm.Register(NewFunctionCallback(typ, record))
	}

	r := New(m, func(o *Options) { o.Callbacks = cm })
	resp, err := r.Run(context.Background(), core.RunRequest{Agent: english, Messages: userTurn("Hola")})
	require.NoError(t, err)
	assert.Same(t, spanish, resp.Agent)

	assert.Equal(t, []string{
		"before_model:English Agent",
		"after_model:English Agent",
		"before_tool:English Agent:get_weather",
		"after_tool:English Agent:get_weather",
		"before_tool:English Agent:transfer_to_spanish_agent",
		"after_tool:English Agent:transfer_to_spanish_agent",
		"handoff:English Agent->Spanish Agent",
		"before_model:Spanish Agent",
		"after_model:Spanish Agent",
	}, trace)
}

func TestCallbacks_ErrorAbortsRun(t *testing.T) {
	deny := errors.New("tool not allowed")
	cm := NewCallbackManager(NewFunctionCallback(CallbackBeforeTool, func(context.Context, *CallbackContext) error {
		return deny
	}))

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("c1", "get_weather", `{"location":"x"}`)),
		core.NewAssistantMessage("", "unreachable"),
	)
	agent := core.NewAgent("Agent", "", weatherTool())

	_, err := New(m, func(o *Options) { o.Callbacks = cm }).Run(context.Background(), core.RunRequest{Agent: agent, Messages: userTurn("hi")})
	assert.ErrorIs(t, err, deny)
	assert.ErrorContains(t, err, "before_tool callback failed")
	assert.Equal(t, 1, m.Remaining())
}

func TestCallbackManager_Order(t *testing.T) {
	var got []int
	cm := NewCallbackManager(
		NewFunctionCallback(CallbackAfterModel, func(context.Context, *CallbackContext) error { got = append(got, 1); return nil }),
		NewFunctionCallback(CallbackAfterModel, func(context.Context, *CallbackContext) error { return errors.New("stop") }),
		NewFunctionCallback(CallbackAfterModel, func(context.Context, *CallbackContext) error { got = append(got, 3); return nil }),
	)

	err := cm.Execute(context.Background(), &CallbackContext{Type: CallbackAfterModel})
	assert.EqualError(t, err, "stop")
	assert.Equal(t, []int{1}, got)

	assert.NoError(t, cm.Execute(context.Background(), &CallbackContext{Type: CallbackHandoff}))

	var nilManager *CallbackManager
	assert.NoError(t, nilManager.Execute(context.Background(), &CallbackContext{Type: CallbackHandoff}))
}
