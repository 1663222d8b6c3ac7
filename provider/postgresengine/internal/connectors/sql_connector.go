package connectors

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // postgres driver
)

// SQLConnector implements Connector using database/sql with the lib/pq driver.
type SQLConnector struct {
	dsn string
}

// NewSQLConnector creates a new database/sql connector for the given DSN.
func NewSQLConnector(dsn string) *SQLConnector {
	return &SQLConnector{dsn: dsn}
}

// Connect opens a fresh handle and pings it, so connection and authentication
// failures surface here instead of on the first statement.
func (c *SQLConnector) Connect(ctx context.Context) (Conn, error) {
	db, openErr := sql.Open(driverPostgres, c.dsn)
	if openErr != nil {
		return nil, openErr
	}

	db.SetMaxOpenConns(1) // one operation, one connection

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return &stdConn{db: db}, nil
}
