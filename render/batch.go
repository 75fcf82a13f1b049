package render

import (
	"fmt"
	"io"

	"github.com/hupe1980/agentswarm/core"
)

// PrintMessages writes the assistant messages of a completed turn. User and
// tool messages are skipped. Output depends only on messages, so rendering
// the same slice twice yields identical text.
func PrintMessages(w io.Writer, messages []core.Message, style Style) {
	for _, m := range messages {
		if m.Role != core.RoleAssistant {
			continue
		}

		if m.Sender != "" {
			fmt.Fprint(w, style.SenderHeader(m.Sender), " ")
		}

		if m.Content != "" {
			fmt.Fprintln(w, m.Content)
		} else if len(m.ToolCalls) == 0 {
			fmt.Fprintln(w)
		}

		if len(m.ToolCalls) > 1 {
			fmt.Fprintln(w)
		}

		for _, tc := range m.ToolCalls {
			fmt.Fprintf(w, "%s(%s)\n", style.ToolName(tc.Function.Name), FormatArguments(tc.Function.Arguments))
		}
	}
}
