// Package metrics owns every Prometheus collector the service exports.
// Collectors live in the default registry under the "newsdesk" namespace
// and are served by the /metrics handler.
//
//	start := time.Now()
//	stored, err := repo.Create(ctx, n)
//	metrics.RecordDBQuery("news_create", time.Since(start))
package metrics
