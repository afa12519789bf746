package dance

import (
	"fmt"
	"slices"
)

// Kind selects the variant of a Move.
type Kind uint8

const (
	Spin Kind = iota + 1
	Exchange
	Partner
)

func (k Kind) String() string {
	switch k {
	case Spin:
		return "spin"
	case Exchange:
		return "exchange"
	case Partner:
		return "partner"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Move is one dance step. Only the fields used by its Kind are meaningful:
// Size for Spin, A and B for Exchange, X and Y for Partner.
type Move[T comparable] struct {
	Kind Kind
	Size int
	A, B int
	X, Y T
}

func NewSpin[T comparable](size int) Move[T] {
	return Move[T]{Kind: Spin, Size: size}
}

func NewExchange[T comparable](a, b int) Move[T] {
	return Move[T]{Kind: Exchange, A: a, B: b}
}

func NewPartner[T comparable](x, y T) Move[T] {
	return Move[T]{Kind: Partner, X: x, Y: y}
}

// Apply performs the move on s in place.
func (m Move[T]) Apply(s State[T]) error {
	switch m.Kind {
	case Spin:
		return spin(s, m.Size)
	case Exchange:
		return exchange(s, m.A, m.B)
	case Partner:
		return partner(s, m.X, m.Y)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedMove, m.Kind)
	}
}

// String renders the move in the syntax accepted by Parse.
func (m Move[T]) String() string {
	switch m.Kind {
	case Spin:
		return fmt.Sprintf("s%d", m.Size)
	case Exchange:
		return fmt.Sprintf("x%d/%d", m.A, m.B)
	case Partner:
		return fmt.Sprintf("p%v/%v", m.X, m.Y)
	default:
		return m.Kind.String()
	}
}

// spin rotates the last size tokens to the front.
func spin[T comparable](s State[T], size int) error {
	if size <= 0 || size >= len(s) {
		return fmt.Errorf("%w: spin %d on %d tokens", ErrOutOfRange, size, len(s))
	}
	cut := len(s) - size
	slices.Reverse(s[:cut])
	slices.Reverse(s[cut:])
	slices.Reverse(s)
	return nil
}

func exchange[T comparable](s State[T], a, b int) error {
	if a < 0 || a >= len(s) || b < 0 || b >= len(s) {
		return fmt.Errorf("%w: exchange %d/%d on %d tokens", ErrOutOfRange, a, b, len(s))
	}
	s[a], s[b] = s[b], s[a]
	return nil
}

func partner[T comparable](s State[T], x, y T) error {
	i := s.Index(x)
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrUnknownToken, x)
	}
	j := s.Index(y)
	if j < 0 {
		return fmt.Errorf("%w: %v", ErrUnknownToken, y)
	}
	s[i], s[j] = s[j], s[i]
	return nil
}
