// Package store records validation runs in a SQLite ledger.
//
// Each run of the validator writes one row to runs and one row per finding
// to warnings, so repeated runs over the same directory can be compared.
// Run IDs are time-sortable UUIDv7 strings unless a generator is injected.
package store
