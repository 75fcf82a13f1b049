// Package logging provides a minimal logging interface and slog-backed adapters.
//
// The Logger interface defines the leveled methods (Debug, Info, Warn, Error)
// that the runner, the conversation driver and tools use. Arguments are
// alternating key/value pairs, as with log/slog. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping an existing *slog.Logger
//   - NewSlogLogger building a text or JSON handler for a given level
//   - NoOpLogger for silent operation (the default everywhere)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", os.Stderr)
//	r := runner.New(model, func(o *runner.Options) { o.Logger = logger })
//
// Logs are meant for stderr; the conversation transcript owns stdout.
package logging
