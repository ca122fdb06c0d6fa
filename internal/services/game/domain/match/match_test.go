package match

import (
	"errors"
	"testing"

	"github.com/ychleo102615/hanahuda-sub001/internal/services/game/domain/card"
)

// January cards are ids 1-4; month 5 card 17 serves as a non-matching filler.

func TestAnalyzeCountsSameMonthCards(t *testing.T) {
	tests := []struct {
		name    string
		field   []card.ID
		want    Kind
		targets int
	}{
		{name: "no match", field: []card.ID{17, 21, 25}, want: KindNoMatch, targets: 0},
		{name: "single", field: []card.ID{2, 17, 21}, want: KindSingle, targets: 1},
		{name: "double", field: []card.ID{2, 3, 17}, want: KindDouble, targets: 2},
		{name: "triple", field: []card.ID{2, 3, 4, 17}, want: KindTriple, targets: 3},
		{name: "empty field", field: nil, want: KindNoMatch, targets: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Analyze(card.IDCrane, tt.field)
			if outcome.Kind != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, outcome.Kind)
			}
			if len(outcome.Targets) != tt.targets {
				t.Fatalf("expected %d targets, got %d", tt.targets, len(outcome.Targets))
			}
			for _, target := range outcome.Targets {
				if card.MustLookup(target).Month != 1 {
					t.Fatalf("target %d is not a January card", target)
				}
			}
		})
	}
}

func TestExecuteCaptureSingle(t *testing.T) {
	outcome := Analyze(card.IDCrane, []card.ID{2, 17})
	captured, err := ExecuteCapture(card.IDCrane, nil, outcome)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(captured) != 2 || captured[0] != card.IDCrane || captured[1] != 2 {
		t.Fatalf("expected played card plus target, got %v", captured)
	}
}

func TestExecuteCaptureNoMatch(t *testing.T) {
	outcome := Analyze(card.IDCrane, []card.ID{17})
	captured, err := ExecuteCapture(card.IDCrane, nil, outcome)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if captured != nil {
		t.Fatalf("expected nothing captured, got %v", captured)
	}
}

func TestExecuteCaptureDoubleRequiresTarget(t *testing.T) {
	outcome := Analyze(card.IDCrane, []card.ID{2, 3})

	if _, err := ExecuteCapture(card.IDCrane, nil, outcome); !errors.Is(err, ErrInvalidTargetSelection) {
		t.Fatalf("expected target selection error, got %v", err)
	}

	wrong := card.ID(17)
	if _, err := ExecuteCapture(card.IDCrane, &wrong, outcome); !errors.Is(err, ErrInvalidTargetSelection) {
		t.Fatalf("expected target selection error for non-target, got %v", err)
	}

	chosen := card.ID(3)
	captured, err := ExecuteCapture(card.IDCrane, &chosen, outcome)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(captured) != 2 || captured[1] != 3 {
		t.Fatalf("expected chosen pair, got %v", captured)
	}
}

func TestExecuteCaptureTripleTakesAll(t *testing.T) {
	outcome := Analyze(card.IDCrane, []card.ID{2, 3, 4})
	captured, err := ExecuteCapture(card.IDCrane, nil, outcome)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(captured) != 4 {
		t.Fatalf("expected played card plus all three targets, got %v", captured)
	}
}

func TestFieldHelpers(t *testing.T) {
	field := []card.ID{2, 3, 17}

	removed := RemoveFromField(field, []card.ID{3, 99})
	if len(removed) != 2 || removed[0] != 2 || removed[1] != 17 {
		t.Fatalf("unexpected field after removal: %v", removed)
	}
	if len(field) != 3 {
		t.Fatal("remove must not mutate its input")
	}

	added := AddToField(field, 21)
	if len(added) != 4 || added[3] != 21 {
		t.Fatalf("unexpected field after add: %v", added)
	}
	if len(field) != 3 {
		t.Fatal("add must not mutate its input")
	}
}
