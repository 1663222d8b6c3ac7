package provider

import (
	"context"

	jsoniter "github.com/json-iterator/go"
)

// Provider is the capability set a provider registry expects from an
// external-system integration: run a read query, run a write/notify
// statement, and release any held resources on shutdown.
type Provider interface {
	ID() string
	Query(ctx context.Context, query string) (Rows, error)
	Notify(ctx context.Context, query string) error
	Dispose(ctx context.Context)
}

// Row is a single result row with values in server column order.
type Row []any

// Rows is an ordered result set with rows in server order.
type Rows []Row

// JSON renders the result set as a JSON array of row arrays.
func (r Rows) JSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(r)
}
