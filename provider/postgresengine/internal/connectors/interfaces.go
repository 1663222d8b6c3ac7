package connectors

import "context"

// Connector opens a new database connection for a single operation.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// Conn is a short-lived connection scoped to one provider operation.
// Exec runs its statement inside a transaction that is committed on success.
type Conn interface {
	Query(ctx context.Context, query string) (Rows, error)
	Exec(ctx context.Context, query string) error
	Close(ctx context.Context) error
}

// Rows defines the interface for query result rows.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}
