package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/model"
	"github.com/hupe1980/agentswarm/render"
	"github.com/hupe1980/agentswarm/runner"
	"github.com/hupe1980/agentswarm/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct{ mock.Mock }

func (m *mockRunner) Run(ctx context.Context, req core.RunRequest) (*core.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*core.Response)
	return resp, args.Error(1)
}

func (m *mockRunner) RunStream(ctx context.Context, req core.RunRequest) (core.ChunkStream, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(core.ChunkStream)
	return s, args.Error(1)
}

func newDriver(r core.Runner, agent *core.Agent, input string, out *bytes.Buffer, optFns ...func(o *Options)) *Driver {
	base := func(o *Options) {
		o.Input = strings.NewReader(input)
		o.Output = out
		o.Banner = ""
	}
	return New(r, agent, append([]func(o *Options){base}, optFns...)...)
}

func countDispatches(n *int) func(o *Options) {
	return func(o *Options) {
		o.OnTransition = func(_, to State) {
			if to == StateDispatching {
				*n++
			}
		}
	}
}

func TestDriver_ExitAfterOneTurn(t *testing.T) {
	agent := core.NewAgent("Agent", "")
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.Anything).Return(&core.Response{
		Messages: []core.Message{core.NewAssistantMessage("Agent", "Hi!")},
		Agent:    agent,
	}, nil).Once()

	var out bytes.Buffer
	dispatches := 0
	d := newDriver(r, agent, "hello\n  EXIT \nignored\n", &out, countDispatches(&dispatches))

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 1, dispatches)
	assert.Equal(t, StateStopped, d.State())
	assert.Equal(t, "User: Agent: Hi!\nUser: ", out.String())
	r.AssertExpectations(t)

	msgs := d.History().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, core.NewUserMessage("hello"), msgs[0])
}

func TestDriver_EOFStopsCleanly(t *testing.T) {
	r := new(mockRunner)
	var out bytes.Buffer
	d := newDriver(r, core.NewAgent("A", ""), "", &out)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, StateStopped, d.State())
	r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestDriver_LastLineWithoutNewline(t *testing.T) {
	agent := core.NewAgent("A", "")
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.MatchedBy(func(req core.RunRequest) bool {
		return len(req.Messages) == 1 && req.Messages[0].Content == "hello"
	})).Return(&core.Response{Agent: agent}, nil).Once()

	var out bytes.Buffer
	require.NoError(t, newDriver(r, agent, "hello", &out).Run(context.Background()))
	r.AssertExpectations(t)
}

func TestDriver_BlankLineIsDispatched(t *testing.T) {
	agent := core.NewAgent("A", "")
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.MatchedBy(func(req core.RunRequest) bool {
		return len(req.Messages) == 1 && req.Messages[0].Content == ""
	})).Return(&core.Response{
		Messages: []core.Message{core.NewAssistantMessage("A", "Anything else?")},
		Agent:    agent,
	}, nil).Once()

	var out bytes.Buffer
	dispatches := 0
	require.NoError(t, newDriver(r, agent, "\nexit\n", &out, countDispatches(&dispatches)).Run(context.Background()))
	assert.Equal(t, 1, dispatches)
	assert.Equal(t, "User: A: Anything else?\nUser: ", out.String())
	r.AssertExpectations(t)
}

func TestDriver_HandoffSwitchesAgentForNextDispatch(t *testing.T) {
	agentA := core.NewAgent("Agent A", "")
	agentB := core.NewAgent("Agent B", "")

	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.MatchedBy(func(req core.RunRequest) bool { return req.Agent == agentA })).
		Return(&core.Response{
			Messages: []core.Message{
				core.NewAssistantMessage("Agent A", "", core.NewToolCall("c1", "transfer_to_agent_b", "{}")),
				core.NewToolMessage("c1", "transfer_to_agent_b", `{"assistant":"Agent B"}`),
			},
			Agent: agentB,
		}, nil).Once()
	r.On("Run", mock.Anything, mock.MatchedBy(func(req core.RunRequest) bool { return req.Agent == agentB })).
		Return(&core.Response{
			Messages: []core.Message{core.NewAssistantMessage("Agent B", "Haiku")},
			Agent:    agentB,
		}, nil).Once()

	var out bytes.Buffer
	d := newDriver(r, agentA, "switch\nagain\nexit\n", &out)
	require.NoError(t, d.Run(context.Background()))

	assert.Same(t, agentB, d.Agent())
	assert.Equal(t, 5, d.History().Len())
	assert.Contains(t, out.String(), "Agent A: transfer_to_agent_b()\n")
	r.AssertExpectations(t)
}

func TestDriver_ContextVariablesReplacedWholesale(t *testing.T) {
	agent := core.NewAgent("A", "")
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.Anything).Return(&core.Response{
		Agent:            agent,
		ContextVariables: core.ContextVariables{"city": "Paris"},
	}, nil).Once()
	r.On("Run", mock.Anything, mock.Anything).Return(&core.Response{Agent: agent}, nil).Once()

	d := newDriver(r, agent, "", &bytes.Buffer{}, func(o *Options) {
		o.ContextVariables = core.ContextVariables{"user": "Ada"}
	})

	_, err := d.Turn(context.Background(), "one")
	require.NoError(t, err)
	assert.Equal(t, core.ContextVariables{"city": "Paris"}, d.ContextVariables())

	_, err = d.Turn(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, core.ContextVariables{"city": "Paris"}, d.ContextVariables())

	calls := r.Calls
	require.Len(t, calls, 2)
	assert.Equal(t, core.ContextVariables{"user": "Ada"}, calls[0].Arguments.Get(1).(core.RunRequest).ContextVariables)
	assert.Equal(t, core.ContextVariables{"city": "Paris"}, calls[1].Arguments.Get(1).(core.RunRequest).ContextVariables)
}

func TestDriver_RunnerFailureStopsLoop(t *testing.T) {
	boom := errors.New("boom")
	agent := core.NewAgent("A", "")
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.Anything).Return(nil, boom).Once()

	dispatches := 0
	d := newDriver(r, agent, "hello\nsecond\n", &bytes.Buffer{}, countDispatches(&dispatches))

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, core.ErrRunnerFailure)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, dispatches)
	assert.Equal(t, StateStopped, d.State())
	assert.Equal(t, []core.Message{core.NewUserMessage("hello")}, d.History().Messages())
}

func TestDriver_NoUsableResultIsRunnerFailure(t *testing.T) {
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.Anything).Return(&core.Response{}, nil).Once()

	_, err := newDriver(r, core.NewAgent("A", ""), "", &bytes.Buffer{}).Turn(context.Background(), "hi")
	assert.ErrorIs(t, err, core.ErrRunnerFailure)
}

func TestDriver_StreamWithoutResponseIsRunnerFailure(t *testing.T) {
	r := new(mockRunner)
	r.On("RunStream", mock.Anything, mock.Anything).Return(core.NewSliceStream(nil, core.TextChunk("A", "hi")), nil).Once()

	d := newDriver(r, core.NewAgent("A", ""), "", &bytes.Buffer{}, func(o *Options) { o.Stream = true })
	_, err := d.Turn(context.Background(), "hi")
	assert.ErrorIs(t, err, core.ErrRunnerFailure)
	assert.ErrorIs(t, err, core.ErrNoResponse)
}

func TestDriver_StreamingTurn(t *testing.T) {
	x := core.NewAgent("X", "")
	resp := &core.Response{Messages: []core.Message{core.NewAssistantMessage("X", "Hi there")}, Agent: x}

	r := new(mockRunner)
	r.On("RunStream", mock.Anything, mock.MatchedBy(func(req core.RunRequest) bool { return req.Stream })).
		Return(core.NewSliceStream(nil,
			core.Chunk{Sender: "X", Content: strPtr("Hi")},
			core.Chunk{Content: strPtr(" there")},
			core.DelimChunk(core.DelimEnd),
			core.ResponseChunk(resp),
		), nil).Once()

	var states []State
	var out bytes.Buffer
	d := newDriver(r, x, "", &out, func(o *Options) {
		o.Stream = true
		o.OnTransition = func(_, to State) { states = append(states, to) }
	})

	got, err := d.Turn(context.Background(), "hello")
	require.NoError(t, err)
	assert.Same(t, resp, got)
	assert.Equal(t, "X: Hi there\n", out.String())
	assert.Equal(t, []State{StateDispatching, StateStreaming, StateAdvancing, StateAwaitingInput}, states)
}

func strPtr(s string) *string { return &s }

func TestDriver_WithRunnerEndToEnd(t *testing.T) {
	english := core.NewAgent("English Agent", "You only speak English.")
	spanish := core.NewAgent("Spanish Agent", "You only speak Spanish.")
	_, err := core.NewGraphBuilder().
		Add(english, spanish).
		Handoff("English Agent", "Spanish Agent", "transfer_to_spanish_agent", "Transfer spanish speaking users immediately.").
		Build()
	require.NoError(t, err)

	m := model.NewScriptedModel(
		core.NewAssistantMessage("", "", core.NewToolCall("", "transfer_to_spanish_agent", `{}`)),
		core.NewAssistantMessage("", "¡Hola! ¿Cómo estás?"),
	)

	var out bytes.Buffer
	d := newDriver(runner.New(m), english, "Hola. ¿Cómo estás?\nexit\n", &out, func(o *Options) {
		o.Style = render.PlainStyle
		o.History = session.NewHistory()
	})
	require.NoError(t, d.Run(context.Background()))

	assert.Same(t, spanish, d.Agent())
	assert.Equal(t, "User: English Agent: transfer_to_spanish_agent()\nSpanish Agent: ¡Hola! ¿Cómo estás?\nUser: ", out.String())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting-input", StateAwaitingInput.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
