package sim

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dancesim/internal/dance"
)

// naive dances every round without looking for repeats.
func naive(x0 dance.State[string], moves []dance.Move[string], n int) dance.State[string] {
	x := x0.Clone()
	for i := 0; i < n; i++ {
		next, err := dance.Round(x, moves)
		Expect(err).NotTo(HaveOccurred())
		x = next
	}
	return x
}

func mustParse(text string) []dance.Move[string] {
	moves, err := dance.ParseAll(strings.Split(text, ","))
	Expect(err).NotTo(HaveOccurred())
	return moves
}

func run(s *Simulator[string], x0 dance.State[string], rounds int) *Result[string] {
	cfg := DefaultConfig()
	cfg.Rounds = rounds
	r, err := s.Run(context.Background(), x0, cfg)
	Expect(err).NotTo(HaveOccurred())
	return r
}

// countingMetric counts observed rounds.
type countingMetric struct{ n int }

func (c *countingMetric) Name() string                             { return "count" }
func (c *countingMetric) Observe(round int, x dance.State[string]) { c.n++ }
func (c *countingMetric) Value() float64                           { return float64(c.n) }
func (c *countingMetric) Reset()                                   { c.n = 0 }

type recordingObserver struct{ rounds []int }

func (o *recordingObserver) OnRound(round int, x dance.State[string]) {
	o.rounds = append(o.rounds, round)
}

var _ = Describe("Simulator", func() {
	var example []dance.Move[string]

	BeforeEach(func() {
		example = mustParse("s1,x3/4,pe/b")
	})

	Describe("small round counts", func() {
		It("returns the initial state for zero rounds", func() {
			x0 := dance.Identity(5)
			r := run(New(example), x0, 0)
			Expect(r.Final).To(Equal(x0))
			Expect(r.RoundsExecuted).To(BeZero())
			Expect(r.CycleFound()).To(BeFalse())
		})

		It("does not alias the initial state", func() {
			x0 := dance.Identity(5)
			r := run(New(example), x0, 0)
			r.Final[0] = "z"
			Expect(x0.String()).To(Equal("abcde"))
		})

		It("dances a single round", func() {
			r := run(New(example), dance.Identity(5), 1)
			Expect(r.Final.String()).To(Equal("baedc"))
		})

		It("dances two rounds", func() {
			r := run(New(example), dance.Identity(5), 2)
			Expect(r.Final.String()).To(Equal("ceadb"))
		})
	})

	Describe("cycle detection", func() {
		It("handles a cycle of length one", func() {
			s := New[string](nil)
			r := run(s, dance.Identity(16), 1_000_000_000)
			Expect(r.Final).To(Equal(dance.Identity(16)))
			Expect(r.CycleStart).To(Equal(0))
			Expect(r.CycleLength).To(Equal(1))
			Expect(r.RoundsExecuted).To(Equal(1))
		})

		It("finds the period of a single spin", func() {
			s := New(mustParse("s1"))
			r := run(s, dance.Identity(16), 1_000_000_003)
			Expect(r.CycleLength).To(Equal(16))
			Expect(r.Final).To(Equal(naive(dance.Identity(16), s.Moves(), 1_000_000_003%16)))
		})

		It("matches literal repetition for a billion rounds", func() {
			r := run(New(example), dance.Identity(5), 1_000_000_000)
			Expect(r.CycleFound()).To(BeTrue())
			Expect(r.Final).To(Equal(naive(dance.Identity(5), example, 1_000_000_000%r.CycleLength)))
		})

		It("matches naive repetition on random dances", func() {
			rng := rand.New(rand.NewSource(16))
			for trial := 0; trial < 20; trial++ {
				moves := randomMoves(rng, 8, 12)
				s := New(moves)
				for _, n := range []int{0, 1, 2, 7, 30, 121, 500} {
					r := run(s, dance.Identity(8), n)
					Expect(r.Final).To(Equal(naive(dance.Identity(8), moves, n)), "trial %d, n %d", trial, n)
				}
			}
		})

		It("uses the offset of a cycle that starts after round zero", func() {
			// 0 -> 1 -> 2 -> 3 -> 4 -> 5 -> 2: tail of two, period four.
			s := New[int](nil)
			s.step = func(x dance.State[int]) (dance.State[int], error) {
				v := x[0] + 1
				if v > 5 {
					v = 2
				}
				return dance.State[int]{v}, nil
			}
			cfg := DefaultConfig()
			for n, want := range map[int]int{0: 0, 1: 1, 5: 5, 6: 2, 7: 3, 10: 2, 1_000_000_001: 5} {
				cfg.Rounds = n
				r, err := s.Run(context.Background(), dance.State[int]{0}, cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Final[0]).To(Equal(want), "n = %d", n)
			}

			cfg.Rounds = 100
			r, err := s.Run(context.Background(), dance.State[int]{0}, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.CycleStart).To(Equal(2))
			Expect(r.CycleLength).To(Equal(4))
		})
	})

	Describe("composability", func() {
		It("runs n1+n2 rounds the same as n1 then n2", func() {
			s := New(mustParse("s3,x0/7,pa/h,x2/5,s6,pc/d"))
			x0 := dance.Identity(8)
			for _, n1 := range []int{0, 1, 13, 999_999} {
				for _, n2 := range []int{0, 2, 57, 1_000_000_000} {
					whole := run(s, x0, n1+n2)
					first := run(s, x0, n1)
					second := run(s, first.Final, n2)
					Expect(second.Final).To(Equal(whole.Final), "n1 %d, n2 %d", n1, n2)
				}
			}
		})
	})

	Describe("failures", func() {
		It("propagates move errors unchanged", func() {
			s := New(mustParse("s1,pa/z"))
			cfg := DefaultConfig()
			cfg.Rounds = 10
			_, err := s.Run(context.Background(), dance.Identity(4), cfg)
			Expect(errors.Is(err, dance.ErrUnknownToken)).To(BeTrue())
		})

		It("rejects a negative round count", func() {
			cfg := DefaultConfig()
			cfg.Rounds = -1
			_, err := New(example).Run(context.Background(), dance.Identity(5), cfg)
			Expect(err).To(MatchError(ErrInvalidConfig))
		})

		It("stops when the history limit is reached", func() {
			cfg := Config{Rounds: 100, MaxHistory: 3}
			_, err := New(mustParse("s1")).Run(context.Background(), dance.Identity(16), cfg)
			Expect(err).To(MatchError(ErrHistoryExhausted))
		})

		It("honours a cancelled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			cfg := DefaultConfig()
			cfg.Rounds = 5
			_, err := New(example).Run(ctx, dance.Identity(5), cfg)
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	Describe("metrics and observers", func() {
		It("observes each executed round once", func() {
			s := New(mustParse("s1"))
			m := &countingMetric{}
			o := &recordingObserver{}
			s.AddMetric(m)
			s.AddObserver(o)

			r := run(s, dance.Identity(4), 1_000)
			Expect(r.RoundsExecuted).To(Equal(4))
			Expect(r.Metrics).To(HaveKeyWithValue("count", 4.0))
			Expect(o.rounds).To(Equal([]int{0, 1, 2, 3}))
		})

		It("keeps history only when asked", func() {
			s := New(mustParse("s1"))
			r := run(s, dance.Identity(4), 1_000)
			Expect(r.History).To(BeNil())

			cfg := DefaultConfig()
			cfg.Rounds = 1_000
			cfg.KeepHistory = true
			r, err := s.Run(context.Background(), dance.Identity(4), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.History).To(HaveLen(4))
			Expect(r.History[1].String()).To(Equal("dabc"))
		})
	})
})

func randomMoves(rng *rand.Rand, n, count int) []dance.Move[string] {
	moves := make([]dance.Move[string], count)
	for i := range moves {
		switch rng.Intn(3) {
		case 0:
			moves[i] = dance.NewSpin[string](1 + rng.Intn(n-1))
		case 1:
			moves[i] = dance.NewExchange[string](rng.Intn(n), rng.Intn(n))
		default:
			moves[i] = dance.NewPartner(string(rune('a'+rng.Intn(n))), string(rune('a'+rng.Intn(n))))
		}
	}
	return moves
}
