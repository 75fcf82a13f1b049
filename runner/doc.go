// Package runner implements the turn engine behind the conversation driver.
//
// A Runner takes the current agent, the full history and the context
// variables, then alternates between model calls and tool execution until the
// active agent answers without requesting tools:
//
//	model turn -> tool calls? -> execute sequentially -> handoff? -> model turn ...
//
// Tool results are appended as role=tool messages. A tool that returns an
// *core.Agent hands control to that agent for the following model turns and
// becomes Response.Agent.
//
// # Streaming
//
// RunStream performs the same loop but exposes progress as a core.ChunkStream:
// every model turn is framed by {delim:start} and {delim:end}, model deltas are
// forwarded as sender-tagged content and tool-call fragments, and the stream
// ends with exactly one chunk carrying the final Response.
package runner
