// Package connectors contains the per-call connection strategies used by the
// postgres engine. Each connector opens a fresh connection for a single
// operation; the engine owns the connection locally and closes it before the
// operation returns, so no connection state ever lives on the adapter.
package connectors
