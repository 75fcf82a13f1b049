package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/agentswarm/core"
)

// Aggregator folds streaming chunks into terminal output. It keeps only the
// text of the turn in progress and the most recently seen sender.
//
// An Aggregator is not safe for concurrent use; a stream has one consumer.
type Aggregator struct {
	out        io.Writer
	style      Style
	content    strings.Builder
	lastSender string
}

// NewAggregator creates an aggregator writing to w.
func NewAggregator(w io.Writer, style Style) *Aggregator {
	return &Aggregator{out: w, style: style}
}

// Fold processes one chunk and writes whatever output it produces. It returns
// the response and true when c is the terminal chunk.
func (a *Aggregator) Fold(c core.Chunk) (*core.Response, bool) {
	if c.Sender != "" {
		a.lastSender = c.Sender
	}

	if c.Content != nil {
		if a.content.Len() == 0 && a.lastSender != "" {
			fmt.Fprint(a.out, a.style.SenderHeader(a.lastSender), " ")
			a.lastSender = ""
		}
		fmt.Fprint(a.out, *c.Content)
		a.content.WriteString(*c.Content)
	}

	for _, tc := range c.ToolCalls {
		if tc.Function.Name == "" {
			continue
		}
		if a.lastSender != "" {
			fmt.Fprint(a.out, a.style.SenderHeader(a.lastSender), " ")
		}
		fmt.Fprint(a.out, a.style.ToolName(tc.Function.Name), "()\n")
	}

	if c.Delim == core.DelimEnd && a.content.Len() > 0 {
		fmt.Fprintln(a.out)
		a.content.Reset()
	}

	if c.Response != nil {
		return c.Response, true
	}

	return nil, false
}

// Reset clears the per-turn state.
func (a *Aggregator) Reset() {
	a.content.Reset()
	a.lastSender = ""
}

// ProcessStream consumes s until its terminal chunk and returns the response
// it carries. Chunks after the terminal one are never requested. The stream
// is closed before returning.
func ProcessStream(s core.ChunkStream, w io.Writer, style Style) (*core.Response, error) {
	defer s.Close()

	agg := NewAggregator(w, style)
	for s.Next() {
		if resp, done := agg.Fold(s.Current()); done {
			return resp, nil
		}
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("stream failed: %w", err)
	}

	return nil, core.ErrNoResponse
}
