package connectors

import (
	"context"
	"database/sql"
)

const driverPostgres = "postgres"

// stdConn wraps a standard library sql.DB to implement the Conn interface.
// It is shared by the database/sql and sqlx connectors.
type stdConn struct {
	db *sql.DB
}

// Query executes a read statement and returns wrapped rows.
func (s *stdConn) Query(ctx context.Context, query string) (Rows, error) {
	rows, queryErr := s.db.QueryContext(ctx, query)
	if queryErr != nil {
		return nil, queryErr
	}

	return &stdRows{rows: rows}, nil
}

// Exec executes a write statement inside a committed transaction.
func (s *stdConn) Exec(ctx context.Context, query string) error {
	tx, beginErr := s.db.BeginTx(ctx, nil)
	if beginErr != nil {
		return beginErr
	}

	if _, execErr := tx.ExecContext(ctx, query); execErr != nil {
		_ = tx.Rollback()
		return execErr
	}

	return tx.Commit()
}

// Close closes the underlying handle.
func (s *stdConn) Close(_ context.Context) error {
	return s.db.Close()
}

// stdRows wraps standard library sql.Rows to implement the Rows interface.
type stdRows struct {
	rows *sql.Rows
}

// Columns returns the column names in server order.
func (s *stdRows) Columns() ([]string, error) {
	return s.rows.Columns()
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// Scan copies row values into provided destinations.
func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

// Err returns any error encountered during iteration.
func (s *stdRows) Err() error {
	return s.rows.Err()
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}
