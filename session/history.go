package session

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/agentswarm/core"
)

// History is an append-only, in-memory message log. It is safe for concurrent
// access; Messages returns a snapshot so callers can never mutate stored
// messages.
type History struct {
	mu       sync.RWMutex
	messages []core.Message
}

// NewHistory constructs a history seeded with messages.
func NewHistory(messages ...core.Message) *History {
	return &History{messages: append([]core.Message(nil), messages...)}
}

// Append adds messages to the end of the history. Messages that violate the
// message invariants are rejected and nothing is appended.
func (h *History) Append(messages ...core.Message) error {
	for i, m := range messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, messages...)

	return nil
}

// Messages returns a snapshot of the full history.
func (h *History) Messages() []core.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]core.Message(nil), h.messages...)
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Last returns the most recent message.
func (h *History) Last() (core.Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return core.Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// WriteJSON writes the history as an indented JSON array.
func (h *History) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h.Messages()); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return nil
}
