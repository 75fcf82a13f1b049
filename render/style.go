package render

import (
	"os"

	"golang.org/x/term"
)

// ANSI escape sequences used by the default terminal style.
const (
	ansiBlue   = "\033[94m"
	ansiPurple = "\033[95m"
	ansiGray   = "\033[90m"
	ansiReset  = "\033[0m"
)

// Style holds the markers wrapped around the two styled classes of output
// (sender names and tool call names) plus the input prompt.
type Style struct {
	Sender string
	Tool   string
	Prompt string
	Reset  string
}

// ColorStyle is the ANSI terminal style.
var ColorStyle = Style{Sender: ansiBlue, Tool: ansiPurple, Prompt: ansiGray, Reset: ansiReset}

// PlainStyle emits no markers.
var PlainStyle = Style{}

// StyleFor picks ColorStyle when f is a terminal and color is not disabled.
func StyleFor(f *os.File, noColor bool) Style {
	if noColor || f == nil || !term.IsTerminal(int(f.Fd())) {
		return PlainStyle
	}
	return ColorStyle
}

// Enabled reports whether the style emits any markers.
func (s Style) Enabled() bool { return s != PlainStyle }

// SenderHeader renders "<sender>:" in the sender style.
func (s Style) SenderHeader(sender string) string {
	return s.Sender + sender + ":" + s.Reset
}

// ToolName renders a tool name in the tool style.
func (s Style) ToolName(name string) string {
	return s.Tool + name + s.Reset
}

// PromptLabel renders the input prompt label.
func (s Style) PromptLabel(label string) string {
	return s.Prompt + label + s.Reset + ": "
}
