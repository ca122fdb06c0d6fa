package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeWrongPlayer, "not your turn")
	if !stderrors.Is(err, &Error{Code: CodeWrongPlayer}) {
		t.Fatal("expected code match")
	}
	if stderrors.Is(err, &Error{Code: CodeCardNotInHand}) {
		t.Fatal("unexpected code match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save game", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected the cause in the chain")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "direct", err: New(CodeNotFound, "no such game"), want: CodeNotFound},
		{name: "wrapped", err: fmt.Errorf("handler: %w", New(CodeWrongPlayer, "not your turn")), want: CodeWrongPlayer},
		{name: "foreign", err: stderrors.New("boom"), want: CodeUnknown},
		{name: "nil", err: nil, want: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeCardNotInHand, http.StatusBadRequest},
		{CodeInvalidStateTransition, http.StatusConflict},
		{CodeWrongPlayer, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Fatalf("%s mapped to %d, want %d", tt.code, got, tt.want)
		}
	}
}
