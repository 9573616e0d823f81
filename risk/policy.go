package risk

import "fmt"

// Policy is the loss-reduction heuristic applied to the risk fraction
// after each trade. The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	LossDivisor    float64 `json:"loss_divisor" yaml:"loss_divisor"`         // 2: first loss halves the fraction
	CapAfterStreak int     `json:"cap_after_streak" yaml:"cap_after_streak"` // 2
	CapFraction    float64 `json:"cap_fraction" yaml:"cap_fraction"`         // 0.075
}

// DefaultPolicy halves risk on the first loss and caps it at 7.5% once
// two reduced trades have already been taken.
func DefaultPolicy() Policy {
	return Policy{
		LossDivisor:    2,
		CapAfterStreak: 2,
		CapFraction:    0.075,
	}
}

// Validate reports the first field that would break the sizing invariants.
func (p Policy) Validate() error {
	if !(p.LossDivisor >= 1) {
		return fmt.Errorf("loss_divisor %.4f must be >= 1", p.LossDivisor)
	}
	if p.CapAfterStreak < 1 {
		return fmt.Errorf("cap_after_streak %d must be >= 1", p.CapAfterStreak)
	}
	if !(p.CapFraction > 0 && p.CapFraction <= 1) {
		return fmt.Errorf("cap_fraction %.4f must be in (0,1]", p.CapFraction)
	}
	return nil
}
