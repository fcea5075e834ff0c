// Package memory provides an in-memory implementation of the store
// interfaces, used by tests and local development where a Postgres
// instance is unavailable. It is safe for concurrent use.
package memory
