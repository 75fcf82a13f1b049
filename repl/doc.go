// Package repl implements the conversation driver: the read, dispatch,
// render and advance loop that lets an operator talk to a rotating set of
// agents.
//
// The driver owns the current agent pointer, the append-only history and
// the context variables. Each line read from the input becomes a user
// message; the runner produces the turn's messages (streamed or batched),
// the driver renders them and adopts the agent the runner hands back. The
// literal "exit" (trimmed, case-insensitive) or end of input stops the loop.
package repl
