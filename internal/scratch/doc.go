// Package scratch manages per-run extraction directories.
//
// Each materialization run acquires its own directory beneath the configured
// scratch root and releases it on every exit path. Directories left behind by
// runs that were killed before releasing are swept by CleanStale.
package scratch
