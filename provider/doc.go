// Package provider defines the contract shared by all external-system
// providers: construction from a generic configuration, a small capability
// set (query, notify, dispose) and pluggable observability interfaces.
//
// Concrete integrations live in sub-packages; see postgresengine for the
// PostgreSQL implementation.
package provider
