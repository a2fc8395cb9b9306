// Package resilience groups the fault-tolerance helpers used around the
// database: a circuit breaker that decorates the news repository and
// exponential-backoff retry used while waiting for the database at startup.
package resilience
