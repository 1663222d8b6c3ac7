package connectors

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// PGXConnector implements Connector using a single pgx connection per call.
type PGXConnector struct {
	dsn string
}

// NewPGXConnector creates a new pgx connector for the given DSN.
func NewPGXConnector(dsn string) *PGXConnector {
	return &PGXConnector{dsn: dsn}
}

// Connect opens a fresh pgx connection.
func (c *PGXConnector) Connect(ctx context.Context) (Conn, error) {
	conn, connectErr := pgx.Connect(ctx, c.dsn)
	if connectErr != nil {
		return nil, connectErr
	}

	return &pgxConn{conn: conn}, nil
}

// pgxConn wraps *pgx.Conn to implement the Conn interface.
type pgxConn struct {
	conn *pgx.Conn
}

// Query executes a read statement and returns wrapped rows.
func (p *pgxConn) Query(ctx context.Context, query string) (Rows, error) {
	rows, queryErr := p.conn.Query(ctx, query)
	if queryErr != nil {
		return nil, queryErr
	}

	return &pgxRows{rows: rows}, nil
}

// Exec executes a write statement inside a committed transaction.
func (p *pgxConn) Exec(ctx context.Context, query string) error {
	tx, beginErr := p.conn.Begin(ctx)
	if beginErr != nil {
		return beginErr
	}

	if _, execErr := tx.Exec(ctx, query); execErr != nil {
		_ = tx.Rollback(ctx)
		return execErr
	}

	return tx.Commit(ctx)
}

// Close closes the underlying connection.
func (p *pgxConn) Close(ctx context.Context) error {
	return p.conn.Close(ctx)
}

// pgxRows wraps pgx.Rows to implement the Rows interface.
type pgxRows struct {
	rows pgx.Rows
}

// Columns returns the column names in server order.
func (p *pgxRows) Columns() ([]string, error) {
	descriptions := p.rows.FieldDescriptions()

	columns := make([]string, len(descriptions))
	for i, description := range descriptions {
		columns[i] = description.Name
	}

	return columns, nil
}

// Next advances to the next row.
func (p *pgxRows) Next() bool {
	return p.rows.Next()
}

// Scan copies row values into provided destinations.
func (p *pgxRows) Scan(dest ...any) error {
	return p.rows.Scan(dest...)
}

// Err returns any error encountered during iteration.
func (p *pgxRows) Err() error {
	return p.rows.Err()
}

// Close closes the rows iterator.
func (p *pgxRows) Close() error {
	p.rows.Close()
	return nil
}
