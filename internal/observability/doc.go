// Package observability groups the logging, metrics and tracing helpers used
// by every layer of the news desk service.
package observability
