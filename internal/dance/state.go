package dance

import (
	"fmt"
	"slices"
	"strings"
)

// State is an ordered line of pairwise-distinct tokens.
type State[T comparable] []T

func (s State[T]) Clone() State[T] {
	return slices.Clone(s)
}

// Index returns the position of tok, or -1.
func (s State[T]) Index(tok T) int {
	return slices.Index(s, tok)
}

func (s State[T]) Equal(other State[T]) bool {
	return slices.Equal(s, other)
}

// Displacement counts tokens that are not where they stand in home.
func (s State[T]) Displacement(home State[T]) int {
	n := 0
	for i := range s {
		if i >= len(home) || s[i] != home[i] {
			n++
		}
	}
	return n
}

// String concatenates the tokens, the way the final line-up is reported.
func (s State[T]) String() string {
	var b strings.Builder
	for _, tok := range s {
		fmt.Fprint(&b, tok)
	}
	return b.String()
}

// Identity returns the n-token line a, b, c, ... Panics if n is outside [1, 26].
func Identity(n int) State[string] {
	if n < 1 || n > 26 {
		panic(fmt.Sprintf("dance: identity size %d outside [1, 26]", n))
	}
	s := make(State[string], n)
	for i := range s {
		s[i] = string(rune('a' + i))
	}
	return s
}

// FromAlphabet returns one token per rune of alphabet.
func FromAlphabet(alphabet string) (State[string], error) {
	if alphabet == "" {
		return nil, fmt.Errorf("%w: empty alphabet", ErrOutOfRange)
	}
	seen := make(map[rune]bool, len(alphabet))
	s := make(State[string], 0, len(alphabet))
	for _, r := range alphabet {
		if seen[r] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, r)
		}
		seen[r] = true
		s = append(s, string(r))
	}
	return s, nil
}
