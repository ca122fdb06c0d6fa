// Package app coordinates the game domain with persistence.
//
// Every command loads the stored snapshot, restores the aggregate,
// applies the domain operation, and saves the result. Commands for the
// same game are serialized so concurrent requests cannot interleave
// partial updates.
package app
