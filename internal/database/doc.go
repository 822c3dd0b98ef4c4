// Package database stores the download history in SQLite.
//
// Each row describes one run: when it happened, which script it read, how
// many words each list had and the SHA3-256 digest of each list. Comparing
// digests between runs shows whether the published lists changed. Page and
// script bodies are never stored.
//
// The history is opt-in (--history). The database lives in a single file
// under the XDG data directory and uses modernc.org/sqlite, so no cgo is
// needed.
package database
