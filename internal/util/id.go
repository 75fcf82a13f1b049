package util

import "github.com/google/uuid"

// NewID returns a random UUID string used for tool call and point identifiers.
func NewID() string { return uuid.NewString() }

// NewCallID returns a tool call identifier in the "call_<uuid>" shape used by
// model providers.
func NewCallID() string { return "call_" + uuid.NewString() }
