package sim

import (
	"math/rand/v2"
)

type Outcome int

const (
	Loss Outcome = iota
	Win
)

func (o Outcome) String() string {
	if o == Win {
		return "Win"
	}
	return "Loss"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OutcomeSource yields one trade outcome per call.
type OutcomeSource interface {
	Next() Outcome
}

// Bernoulli draws Win with probability p from a uniform source.
type Bernoulli struct {
	p   float64
	rng *rand.Rand
}

// NewBernoulli returns a reproducible source for the given seed.
func NewBernoulli(p float64, seed uint64) *Bernoulli {
	return &Bernoulli{
		p:   p,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewRandomBernoulli seeds from the runtime's random source.
func NewRandomBernoulli(p float64) *Bernoulli {
	return NewBernoulli(p, rand.Uint64())
}

func (b *Bernoulli) Next() Outcome {
	if b.rng.Float64() < b.p {
		return Win
	}
	return Loss
}

// Script replays a fixed outcome sequence, starting over when it runs out.
type Script struct {
	outcomes []Outcome
	pos      int
}

func NewScript(outcomes ...Outcome) *Script {
	if len(outcomes) == 0 {
		outcomes = []Outcome{Loss}
	}
	return &Script{outcomes: outcomes}
}

func (s *Script) Next() Outcome {
	o := s.outcomes[s.pos%len(s.outcomes)]
	s.pos++
	return o
}
