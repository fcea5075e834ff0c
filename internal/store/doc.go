// Package store defines the persistence contract for tasks along with
// the errors and transaction helpers shared by its implementations.
// Keeping the contract here lets business rules stay independent of the
// backing storage; see platform/postgres and platform/memory for the
// concrete stores.
package store
