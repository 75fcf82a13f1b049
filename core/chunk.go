package core

import "sync"

// Delim marks turn boundaries inside a chunk stream.
type Delim string

const (
	// DelimNone is the zero value: the chunk is not a boundary.
	DelimNone Delim = ""
	// DelimStart opens a model turn.
	DelimStart Delim = "start"
	// DelimEnd closes a model turn.
	DelimEnd Delim = "end"
)

// Chunk is one transient, partial update of a streaming run. All fields are
// optional; exactly one chunk per stream carries Response and it is the last.
type Chunk struct {
	Sender    string     `json:"sender,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Delim     Delim      `json:"delim,omitempty"`
	Response  *Response  `json:"response,omitempty"`
}

// TextChunk returns a content fragment chunk.
func TextChunk(sender, content string) Chunk {
	return Chunk{Sender: sender, Content: &content}
}

// DelimChunk returns a turn boundary chunk.
func DelimChunk(d Delim) Chunk { return Chunk{Delim: d} }

// ResponseChunk returns the terminal chunk of a stream.
func ResponseChunk(resp *Response) Chunk { return Chunk{Response: resp} }

// IsTerminal reports whether the chunk carries the final response.
func (c Chunk) IsTerminal() bool { return c.Response != nil }

// ChunkStream is a lazy, finite, forward-only and non-restartable sequence of
// chunks. Usage mirrors SDK stream iterators:
//
//	for s.Next() {
//		c := s.Current()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
//
// A well-formed stream yields exactly one terminal chunk, after which Next
// returns false.
type ChunkStream interface {
	// Next advances to the next chunk, blocking until it is available.
	Next() bool
	// Current returns the chunk Next advanced to.
	Current() Chunk
	// Err returns the error that ended the stream, if any.
	Err() error
	// Close releases the producer. It is safe to call more than once.
	Close() error
}

// SliceStream is a ChunkStream over a fixed slice of chunks.
type SliceStream struct {
	chunks []Chunk
	pos    int
	err    error
}

// NewSliceStream creates a stream that yields chunks in order and then ends
// with err (which may be nil).
func NewSliceStream(err error, chunks ...Chunk) *SliceStream {
	return &SliceStream{chunks: chunks, pos: -1, err: err}
}

// Next implements ChunkStream.
func (s *SliceStream) Next() bool {
	if s.pos+1 >= len(s.chunks) {
		s.pos = len(s.chunks)
		return false
	}
	s.pos++
	return true
}

// Current implements ChunkStream.
func (s *SliceStream) Current() Chunk {
	if s.pos < 0 || s.pos >= len(s.chunks) {
		return Chunk{}
	}
	return s.chunks[s.pos]
}

// Err implements ChunkStream. It is only reported once the chunks are exhausted.
func (s *SliceStream) Err() error {
	if s.pos >= len(s.chunks) {
		return s.err
	}
	return nil
}

// Close implements ChunkStream.
func (s *SliceStream) Close() error { return nil }

// ChannelStream is a ChunkStream fed by a producer goroutine. The producer
// sends on an unbuffered channel so it never runs ahead of the consumer by
// more than the chunk being handed over.
type ChannelStream struct {
	ch      <-chan Chunk
	errCh   <-chan error
	done    chan struct{}
	current Chunk
	err     error
	once    sync.Once
}

// Emitter is the producer side of a ChannelStream.
type Emitter struct {
	ch   chan<- Chunk
	done <-chan struct{}
}

// Emit hands one chunk to the consumer. It returns false once the consumer
// has closed the stream; the producer must stop then.
func (e Emitter) Emit(c Chunk) bool {
	select {
	case e.ch <- c:
		return true
	case <-e.done:
		return false
	}
}

// NewChannelStream starts produce in a goroutine and returns the consuming
// end. The error returned by produce is reported by Err.
func NewChannelStream(produce func(emit Emitter) error) *ChannelStream {
	ch := make(chan Chunk)
	errCh := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(ch)
		defer close(errCh)
		if err := produce(Emitter{ch: ch, done: done}); err != nil {
			errCh <- err
		}
	}()

	return &ChannelStream{ch: ch, errCh: errCh, done: done}
}

// Next implements ChunkStream.
func (s *ChannelStream) Next() bool {
	c, ok := <-s.ch
	if !ok {
		if err, has := <-s.errCh; has {
			s.err = err
		}
		return false
	}
	s.current = c
	return true
}

// Current implements ChunkStream.
func (s *ChannelStream) Current() Chunk { return s.current }

// Err implements ChunkStream.
func (s *ChannelStream) Err() error { return s.err }

// Close implements ChunkStream. It signals the producer to stop.
func (s *ChannelStream) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
