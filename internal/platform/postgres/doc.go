// Package postgres provides the PostgreSQL-backed implementation of the
// persistence interfaces defined in the internal/store package. It handles
// query execution, row-level locking for read-modify-write operations, and
// mapping between domain entities and database records.
package postgres
