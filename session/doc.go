// Package session holds the conversation history of a single REPL session.
//
// History is append-only and linearized: every reader observes messages in
// the order they were appended. It lives only as long as the process.
package session
