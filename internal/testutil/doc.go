// Package testutil contains fluent builders used across tests to construct
// conversations and chunk streams with little boilerplate. Not intended for
// production use.
package testutil
