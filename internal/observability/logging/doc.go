// Package logging builds the process logger and carries request-scoped
// loggers through context.
//
//	logger := logging.New(logging.Options{Level: "info", Format: "json"})
//	slog.SetDefault(logger)
//
// Middleware stores a logger enriched with request_id and trace_id; code
// below the handler reads it back with FromContext.
package logging
