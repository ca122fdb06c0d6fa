// Package errors provides structured error handling with machine
// readable codes shared by the service and transport layers.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lifecycle errors
	CodeGameIDEmpty         Code = "GAME_ID_EMPTY"
	CodePlayerIDEmpty       Code = "GAME_PLAYER_ID_EMPTY"
	CodeInvalidRuleset      Code = "GAME_INVALID_RULESET"
	CodeGameNotWaiting      Code = "GAME_NOT_WAITING"
	CodeGameNotInProgress   Code = "GAME_NOT_IN_PROGRESS"
	CodeRoundInProgress     Code = "GAME_ROUND_IN_PROGRESS"
	CodeNoActiveRound       Code = "GAME_NO_ACTIVE_ROUND"
	CodeUnknownPlayer       Code = "GAME_UNKNOWN_PLAYER"
	CodePlayerAlreadyJoined Code = "GAME_PLAYER_ALREADY_JOINED"

	// Turn errors
	CodeInvalidStateTransition Code = "GAME_INVALID_STATE_TRANSITION"
	CodeWrongPlayer            Code = "GAME_WRONG_PLAYER"
	CodeCardNotInHand          Code = "GAME_CARD_NOT_IN_HAND"
	CodeInvalidTargetSelection Code = "GAME_INVALID_TARGET_SELECTION"

	// Deal errors
	CodeInvalidDeckSize    Code = "GAME_INVALID_DECK_SIZE"
	CodeInvalidPlayerCount Code = "GAME_INVALID_PLAYER_COUNT"

	// Transport errors
	CodeMalformedRequest Code = "GAME_MALFORMED_REQUEST"

	// Consistency errors
	CodeInvariantViolation Code = "GAME_INVARIANT_VIOLATION"
	CodeSnapshotInvalid    Code = "GAME_SNAPSHOT_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeGameIDEmpty,
		CodePlayerIDEmpty,
		CodeInvalidRuleset,
		CodeInvalidDeckSize,
		CodeInvalidPlayerCount,
		CodeInvalidTargetSelection,
		CodeCardNotInHand,
		CodeMalformedRequest,
		CodeSnapshotInvalid:
		return http.StatusBadRequest

	// Conflict - state doesn't allow the operation
	case CodeGameNotWaiting,
		CodeGameNotInProgress,
		CodeRoundInProgress,
		CodeNoActiveRound,
		CodeInvalidStateTransition,
		CodePlayerAlreadyJoined:
		return http.StatusConflict

	// Forbidden - the caller is not entitled to act
	case CodeWrongPlayer,
		CodeUnknownPlayer:
		return http.StatusForbidden

	// Not found - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
