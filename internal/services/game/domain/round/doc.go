// Package round implements the turn-by-turn state machine for one
// dealt round of koi-koi.
//
// A round moves between four flow states:
//
//   - awaiting_hand_play: the active player must play a hand card
//   - awaiting_selection: an ambiguous drawn-card match needs a target
//   - awaiting_decision: a newly formed pattern needs koi-koi or end
//   - ended: the round is settled
//
// Commands are synchronous and apply-or-reject: a failed command
// returns an error and leaves the round exactly as it was. Every
// accepted command bumps the round's version counter, which supports
// optimistic concurrency in callers without the engine knowing about
// it.
//
// The package owns no randomness and performs no I/O; dealing happens
// in the deck package and the caller hands the result to New.
package round
