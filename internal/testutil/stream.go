package testutil

import "github.com/hupe1980/agentswarm/core"

// StreamBuilder scripts a chunk stream in tests:
//
//	s := NewStream().Start().Text("A", "Hi", " there").End().Response(resp).Build()
type StreamBuilder struct {
	chunks []core.Chunk
	err    error
}

// NewStream creates an empty builder.
func NewStream() *StreamBuilder { return &StreamBuilder{} }

// Start appends a start delimiter.
func (b *StreamBuilder) Start() *StreamBuilder {
	b.chunks = append(b.chunks, core.DelimChunk(core.DelimStart))
	return b
}

// End appends an end delimiter.
func (b *StreamBuilder) End() *StreamBuilder {
	b.chunks = append(b.chunks, core.DelimChunk(core.DelimEnd))
	return b
}

// Text appends one content chunk per fragment, all attributed to sender.
func (b *StreamBuilder) Text(sender string, fragments ...string) *StreamBuilder {
	for _, f := range fragments {
		b.chunks = append(b.chunks, core.TextChunk(sender, f))
	}
	return b
}

// ToolCall appends the head fragment of a streamed tool call followed by
// its arguments fragment.
func (b *StreamBuilder) ToolCall(sender, name, arguments string) *StreamBuilder {
	b.chunks = append(b.chunks,
		core.Chunk{Sender: sender, ToolCalls: []core.ToolCall{{Type: "function", Function: core.FunctionCall{Name: name}}}},
		core.Chunk{Sender: sender, ToolCalls: []core.ToolCall{{Function: core.FunctionCall{Arguments: arguments}}}},
	)
	return b
}

// Chunk appends a raw chunk.
func (b *StreamBuilder) Chunk(c core.Chunk) *StreamBuilder {
	b.chunks = append(b.chunks, c)
	return b
}

// Response appends the terminal chunk.
func (b *StreamBuilder) Response(resp *core.Response) *StreamBuilder {
	b.chunks = append(b.chunks, core.ResponseChunk(resp))
	return b
}

// Fail makes the stream end with err after the scripted chunks.
func (b *StreamBuilder) Fail(err error) *StreamBuilder {
	b.err = err
	return b
}

// Chunks returns a copy of the scripted chunks.
func (b *StreamBuilder) Chunks() []core.Chunk {
	return append([]core.Chunk(nil), b.chunks...)
}

// Build returns the scripted stream.
func (b *StreamBuilder) Build() *core.SliceStream {
	return core.NewSliceStream(b.err, b.Chunks()...)
}
