// Package api contains service API implementations.
//
// API handlers are organized by transport. Today, the HTTP transport is
// the canonical surface area for the game service.
//
// Subpackages:
//   - http: JSON endpoints for creating games, joining, playing cards,
//     resolving capture selections, and round decisions
package api
