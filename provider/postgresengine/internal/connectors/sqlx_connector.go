package connectors

import (
	"context"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq" // postgres driver
)

// SQLXConnector implements Connector using sqlx with the lib/pq driver.
type SQLXConnector struct {
	dsn string
}

// NewSQLXConnector creates a new sqlx connector for the given DSN.
func NewSQLXConnector(dsn string) *SQLXConnector {
	return &SQLXConnector{dsn: dsn}
}

// Connect opens and pings a fresh sqlx handle.
func (c *SQLXConnector) Connect(ctx context.Context) (Conn, error) {
	db, connectErr := sqlx.ConnectContext(ctx, driverPostgres, c.dsn)
	if connectErr != nil {
		return nil, connectErr
	}

	db.SetMaxOpenConns(1) // one operation, one connection

	return &stdConn{db: db.DB}, nil
}
