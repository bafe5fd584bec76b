// Package history records materialization runs in a small SQLite database so
// past splits can be listed and audited.
//
// Each run is inserted with status "running" when it starts and updated once
// it finishes with the bucket counts or the error kind that stopped it. The
// schema is embedded and versioned; a version mismatch asks the user to delete
// the database rather than migrating it.
package history
