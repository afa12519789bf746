package dance

import (
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse converts one move token (s1, x3/4, pe/b) into a Move.
func Parse(text string) (Move[string], error) {
	if text == "" {
		return Move[string]{}, &ParseError{Text: text, Reason: "empty move"}
	}
	label, params := text[0], text[1:]

	switch label {
	case 's':
		size, err := strconv.Atoi(params)
		if err != nil {
			return Move[string]{}, &ParseError{Text: text, Reason: "spin size is not an integer"}
		}
		return NewSpin[string](size), nil
	case 'x':
		a, b, ok := splitPair(params)
		if !ok {
			return Move[string]{}, &ParseError{Text: text, Reason: "exchange wants two positions"}
		}
		pa, errA := strconv.Atoi(a)
		pb, errB := strconv.Atoi(b)
		if errA != nil || errB != nil {
			return Move[string]{}, &ParseError{Text: text, Reason: "exchange position is not an integer"}
		}
		return NewExchange[string](pa, pb), nil
	case 'p':
		a, b, ok := splitPair(params)
		if !ok || a == "" || b == "" {
			return Move[string]{}, &ParseError{Text: text, Reason: "partner wants two tokens"}
		}
		return NewPartner(a, b), nil
	default:
		r, _ := utf8.DecodeRuneInString(text)
		return Move[string]{}, &ParseError{Text: text, Reason: "unknown move label " + strconv.QuoteRune(r)}
	}
}

// splitPair splits "a/b" into exactly two parts.
func splitPair(s string) (string, string, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Moves lazily parses tokens. It yields the first parse error and stops.
func Moves(tokens iter.Seq[string]) iter.Seq2[Move[string], error] {
	return func(yield func(Move[string], error) bool) {
		for tok := range tokens {
			m, err := Parse(tok)
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

// ParseAll parses every token into a move list.
func ParseAll(tokens []string) ([]Move[string], error) {
	moves := make([]Move[string], 0, len(tokens))
	for m, err := range Moves(slices.Values(tokens)) {
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
