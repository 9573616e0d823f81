package risk

import "math"

// Sizer tracks the risk fraction across a run. Fraction is the value to
// size the next trade with; Apply moves it after the outcome is known,
// so the policy always lags one trade behind.
type Sizer struct {
	Base          float64
	Current       float64
	ReducedStreak int

	policy Policy
}

func NewSizer(base float64, p Policy) *Sizer {
	return &Sizer{
		Base:    base,
		Current: base,
		policy:  p,
	}
}

// Fraction returns the fraction to use for the trade about to be taken.
func (s *Sizer) Fraction() float64 { return s.Current }

// Apply updates the sizer with a trade outcome and returns the new
// fraction.
func (s *Sizer) Apply(win bool) float64 {
	if win {
		s.Current = s.Base
		s.ReducedStreak = 0
		return s.Current
	}

	switch {
	case s.ReducedStreak == 0:
		s.Current /= s.policy.LossDivisor
	case s.ReducedStreak >= s.policy.CapAfterStreak:
		s.Current = math.Min(s.Current, s.policy.CapFraction)
	}
	s.ReducedStreak++
	return s.Current
}
