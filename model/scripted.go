package model

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/internal/util"
)

// ErrScriptExhausted is returned when a ScriptedModel has no turns left.
var ErrScriptExhausted = errors.New("scripted model: no turns left")

// ScriptFunc produces the assistant reply for a request.
type ScriptFunc func(req Request) (core.Message, error)

// ScriptedModel is a deterministic in-memory Model for tests and demos. It
// replays scripted assistant turns in order, one per Generate call, and
// records every request it receives.
//
// When streaming, content is emitted word by word and each tool call as a
// name fragment followed by an arguments fragment, mirroring how real
// providers deliver deltas.
type ScriptedModel struct {
	mu       sync.Mutex
	info     Info
	turns    []ScriptFunc
	requests []Request
}

// NewScriptedModel constructs a ScriptedModel replaying the given assistant turns.
func NewScriptedModel(turns ...core.Message) *ScriptedModel {
	m := &ScriptedModel{info: Info{Name: "scripted", Provider: "scripted", SupportsTools: true}}
	for _, t := range turns {
		m.AddTurn(t)
	}
	return m
}

// AddTurn appends a fixed assistant reply to the script.
func (m *ScriptedModel) AddTurn(msg core.Message) *ScriptedModel {
	return m.AddFunc(func(Request) (core.Message, error) { return msg, nil })
}

// AddFunc appends a computed reply to the script.
func (m *ScriptedModel) AddFunc(fn ScriptFunc) *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, fn)
	return m
}

// Requests returns the requests received so far.
func (m *ScriptedModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// Remaining returns the number of unplayed turns.
func (m *ScriptedModel) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

func (m *ScriptedModel) next(req Request) (ScriptFunc, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.turns) == 0 {
		return nil, false
	}
	fn := m.turns[0]
	m.turns = m.turns[1:]
	return fn, true
}

// Generate implements Model.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	out := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		fn, ok := m.next(req)
		if !ok {
			errCh <- ErrScriptExhausted
			return
		}

		msg, err := fn(req)
		if err != nil {
			errCh <- err
			return
		}
		msg.Role = core.RoleAssistant
		msg.ToolCalls = append([]core.ToolCall(nil), msg.ToolCalls...)
		for i := range msg.ToolCalls {
			if msg.ToolCalls[i].ID == "" {
				msg.ToolCalls[i].ID = util.NewCallID()
			}
			if msg.ToolCalls[i].Type == "" {
				msg.ToolCalls[i].Type = "function"
			}
		}

		send := func(r Response) bool {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return false
			case out <- r:
				return true
			}
		}

		if req.Stream {
			for _, word := range strings.SplitAfter(msg.Content, " ") {
				if word == "" {
					continue
				}
				if !send(Response{Partial: true, Message: core.Message{Role: core.RoleAssistant, Content: word}}) {
					return
				}
			}
			for _, tc := range msg.ToolCalls {
				head := core.NewToolCall(tc.ID, tc.Function.Name, "")
				tail := core.ToolCall{Type: "function", Function: core.FunctionCall{Arguments: tc.Function.Arguments}}
				for _, fragment := range []core.ToolCall{head, tail} {
					if !send(Response{Partial: true, Message: core.Message{Role: core.RoleAssistant, ToolCalls: []core.ToolCall{fragment}}}) {
						return
					}
				}
			}
		}

		finish := "stop"
		if msg.HasToolCalls() {
			finish = "tool_calls"
		}
		send(Response{Message: msg, FinishReason: finish})
	}()

	return out, errCh
}

// Info implements Model.
func (m *ScriptedModel) Info() Info { return m.info }
