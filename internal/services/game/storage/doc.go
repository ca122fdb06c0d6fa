// Package storage defines persistence interfaces for the game service.
//
// Games are persisted as a metadata row plus a full snapshot, so a
// restarted process can restore any in-flight match. Implementations
// (e.g., SQLite) live in subpackages.
//
// Common error types:
//   - ErrNotFound: requested record is missing
package storage
