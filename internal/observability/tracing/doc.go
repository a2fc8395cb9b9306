// Package tracing provides OpenTelemetry tracing integration.
//
// It owns the process-wide tracer provider (see NewProvider), an HTTP server
// middleware that starts one span per request, and GetTracer for use case and
// repository spans.
//
// Example usage:
//
//	provider, err := tracing.NewProvider(ctx, tracing.Config{ServiceName: "newsdesk"})
//	if err != nil { ... }
//	defer provider.Shutdown(ctx)
//
//	ctx, span := tracing.GetTracer().Start(ctx, "news.Create")
//	defer span.End()
package tracing
