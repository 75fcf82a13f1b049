package core

import "errors"

var (
	// ErrMalformedArguments reports a tool call whose argument string is not a
	// valid JSON object. Renderers recover by showing the raw string.
	ErrMalformedArguments = errors.New("malformed tool arguments")

	// ErrRunnerFailure reports that the runner raised or produced no usable
	// result. It is fatal to the conversation loop.
	ErrRunnerFailure = errors.New("runner failure")

	// ErrNoResponse reports a chunk stream that ended without a terminal
	// response chunk.
	ErrNoResponse = errors.New("stream ended without response")

	// ErrToolNotFound reports a tool call naming a tool the agent does not hold.
	ErrToolNotFound = errors.New("tool not found")
)
