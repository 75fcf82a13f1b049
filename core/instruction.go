package core

import "github.com/hupe1980/agentswarm/internal/util"

// InstructionFunc derives instruction text from the context variables.
type InstructionFunc func(vars ContextVariables) (string, error)

// Instruction is the system prompt of an agent. It is one of three forms:
//
//   - static text, sent to the model exactly as written;
//   - a template over the context variables ({{.name}}), parsed once;
//   - a function of the context variables.
//
// The zero value is the empty static instruction.
type Instruction struct {
	text string
	tmpl *util.Template
	fn   InstructionFunc
}

// NewInstructionFromText creates an Instruction from a static string. The text
// is used verbatim; template markers are not interpreted.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromTemplate parses text as a text/template over the context
// variables. Variables the template references but the conversation lacks
// render as empty strings.
func NewInstructionFromTemplate(text string) (Instruction, error) {
	tmpl, err := util.ParseTemplate(text)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{text: text, tmpl: tmpl}, nil
}

// MustInstructionFromTemplate is like NewInstructionFromTemplate but panics on
// a malformed template.
func MustInstructionFromTemplate(text string) Instruction {
	i, err := NewInstructionFromTemplate(text)
	if err != nil {
		panic(err)
	}
	return i
}

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(fn InstructionFunc) Instruction { return Instruction{fn: fn} }

// IsStatic returns true if the instruction does not depend on the context
// variables.
func (i Instruction) IsStatic() bool { return i.fn == nil && i.tmpl == nil }

// Resolve returns the instruction text for the given context variables.
func (i Instruction) Resolve(vars ContextVariables) (string, error) {
	switch {
	case i.fn != nil:
		return i.fn(vars)
	case i.tmpl != nil:
		return i.tmpl.Execute(vars)
	default:
		return i.text, nil
	}
}
