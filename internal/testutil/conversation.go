package testutil

import (
	"fmt"

	"github.com/hupe1980/agentswarm/core"
)

// ConversationBuilder builds a message history in tests.
//
//	msgs := NewConversation().
//		User("hi").
//		Assistant("A", "", Call("transfer_to_b", `{}`)).
//		Tool("transfer_to_b", `{"assistant":"B"}`).
//		Assistant("B", "Hello!").
//		Messages()
//
// Tool call ids are generated in order (call_1, call_2, ...) and Tool answers
// the oldest unanswered call with the given name.
type ConversationBuilder struct {
	msgs    []core.Message
	nextID  int
	pending []core.ToolCall
}

// NewConversation creates an empty builder.
func NewConversation() *ConversationBuilder { return &ConversationBuilder{} }

// Call describes a tool call for Assistant.
func Call(name, arguments string) core.ToolCall {
	return core.NewToolCall("", name, arguments)
}

// User appends a user message.
func (b *ConversationBuilder) User(content string) *ConversationBuilder {
	b.msgs = append(b.msgs, core.NewUserMessage(content))
	return b
}

// Assistant appends an assistant message, assigning ids to calls.
func (b *ConversationBuilder) Assistant(sender, content string, calls ...core.ToolCall) *ConversationBuilder {
	withIDs := make([]core.ToolCall, len(calls))
	for i, c := range calls {
		b.nextID++
		c.ID = fmt.Sprintf("call_%d", b.nextID)
		withIDs[i] = c
		b.pending = append(b.pending, c)
	}
	b.msgs = append(b.msgs, core.NewAssistantMessage(sender, content, withIDs...))
	return b
}

// Tool appends the tool message answering the oldest pending call named name.
// It panics when no such call exists.
func (b *ConversationBuilder) Tool(name, content string) *ConversationBuilder {
	for i, c := range b.pending {
		if c.Function.Name == name {
			b.pending = append(b.pending[:i], b.pending[i+1:]...)
			b.msgs = append(b.msgs, core.NewToolMessage(c.ID, name, content))
			return b
		}
	}
	panic(fmt.Sprintf("testutil: no pending tool call named %q", name))
}

// Messages returns a copy of the built history.
func (b *ConversationBuilder) Messages() []core.Message {
	return append([]core.Message(nil), b.msgs...)
}
