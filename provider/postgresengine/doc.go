// Package postgresengine provides the PostgreSQL implementation of the
// provider contract.
//
// The adapter is a one-shot connect/execute/close helper: every Query and
// Notify opens its own connection through one of the supported backends
// (pgx, database/sql with lib/pq, sqlx), executes the caller-supplied SQL,
// and closes the connection before returning. No connection is retained on
// the adapter, so instances are safe for concurrent use.
//
// Usage examples:
//
//	// Basic usage
//	adapter, _ := postgresengine.NewAdapterWithPGX("postgres-prod", config)
//
//	// With operational logging
//	adapter, _ := postgresengine.NewAdapterWithPGX(
//		"postgres-prod",
//		config,
//		postgresengine.WithLogger(logger),
//	)
//
//	rows, _ := adapter.Query(ctx, "select * from disk")
//	_ = adapter.Notify(ctx, "insert into alerts values (1)")
//	adapter.Dispose(ctx)
package postgresengine
