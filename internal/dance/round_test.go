package dance

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"
)

func TestRound_Example(t *testing.T) {
	moves, err := ParseAll(strings.Split("s1,x3/4,pe/b", ","))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		start State[string]
		want  string
	}{
		{Identity(5), "baedc"},
		{Identity(8), "haedcbfg"},
	}

	for _, tt := range tests {
		got, err := Round(tt.start, moves)
		if err != nil {
			t.Fatalf("round: %v", err)
		}
		if got.String() != tt.want {
			t.Errorf("round over %s = %s, want %s", tt.start, got, tt.want)
		}
	}
}

func TestRound_SpinExchangePartner(t *testing.T) {
	moves := []Move[string]{
		NewSpin[string](4),
		NewExchange[string](3, 4),
		NewPartner("e", "b"),
	}
	got, err := Round(Identity(8), moves)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	// exchange positions are zero-based: x3/4 swaps h and a
	if got.String() != "bfgahecd" {
		t.Errorf("got %s, want bfgahecd", got)
	}
}

func TestRound_EmptyIsIdentity(t *testing.T) {
	s := Identity(16)
	got, err := Round(s, nil)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if !got.Equal(s) {
		t.Errorf("empty round changed state: %s", got)
	}
}

func TestRound_DoesNotMutateInput(t *testing.T) {
	s := Identity(6)
	if _, err := Round(s, []Move[string]{NewSpin[string](2)}); err != nil {
		t.Fatalf("round: %v", err)
	}
	if s.String() != "abcdef" {
		t.Errorf("input mutated to %s", s)
	}
}

func TestRound_PreservesTokens(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := Identity(16)

	for trial := 0; trial < 50; trial++ {
		moves := randomMoves(rng, len(start), 40)
		got, err := Round(start, moves)
		if err != nil {
			t.Fatalf("round: %v", err)
		}
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if !slices.Equal(sorted, start) {
			t.Fatalf("trial %d: tokens changed: %s", trial, got)
		}
	}
}

func TestRound_ErrorCarriesIndex(t *testing.T) {
	moves := []Move[string]{NewSpin[string](1), NewPartner("a", "z")}
	_, err := Round(Identity(4), moves)
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
	var me *MoveError
	if !errors.As(err, &me) || me.Index != 1 || me.Move != "pa/z" {
		t.Errorf("unexpected move error %v", err)
	}
}

func randomMoves(rng *rand.Rand, n, count int) []Move[string] {
	moves := make([]Move[string], count)
	for i := range moves {
		switch rng.Intn(3) {
		case 0:
			moves[i] = NewSpin[string](1 + rng.Intn(n-1))
		case 1:
			moves[i] = NewExchange[string](rng.Intn(n), rng.Intn(n))
		default:
			moves[i] = NewPartner(string(rune('a'+rng.Intn(n))), string(rune('a'+rng.Intn(n))))
		}
	}
	return moves
}
