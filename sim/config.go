package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/equitysim/risk"
)

const (
	DefaultTargetEquity = 1_000_000
	DefaultMaxTrades    = 100_000
)

// ErrInvalidConfig is wrapped by every validation failure; the loop
// never starts for a config that fails Validate.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config is fixed for the duration of a run.
type Config struct {
	InitialEquity   float64
	RiskFraction    float64
	RewardRiskRatio float64
	WinProbability  float64
	CommissionRate  float64

	TargetEquity  float64
	RuinThreshold float64

	// MaxTrades bounds runs whose drift makes target and ruin unreachable.
	MaxTrades int

	Policy risk.Policy
}

// NewConfig fills the defaults: target 1,000,000, ruin at 0, the
// default loss-reduction policy and a 100,000 trade cap.
func NewConfig(initial, riskFraction, rr, winProb, commission float64) Config {
	return Config{
		InitialEquity:   initial,
		RiskFraction:    riskFraction,
		RewardRiskRatio: rr,
		WinProbability:  winProb,
		CommissionRate:  commission,
		TargetEquity:    DefaultTargetEquity,
		RuinThreshold:   0,
		MaxTrades:       DefaultMaxTrades,
		Policy:          risk.DefaultPolicy(),
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"initial equity":    c.InitialEquity,
		"risk fraction":     c.RiskFraction,
		"reward:risk ratio": c.RewardRiskRatio,
		"win probability":   c.WinProbability,
		"commission rate":   c.CommissionRate,
		"target equity":     c.TargetEquity,
		"ruin threshold":    c.RuinThreshold,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("%s must be finite", name)
		}
	}

	if c.InitialEquity <= 0 {
		return invalid("initial equity %.2f must be positive", c.InitialEquity)
	}
	if c.RiskFraction <= 0 || c.RiskFraction > 1 {
		return invalid("risk fraction %.4f must be in (0,1]", c.RiskFraction)
	}
	if c.RewardRiskRatio <= 0 {
		return invalid("reward:risk ratio %.4f must be positive", c.RewardRiskRatio)
	}
	if c.WinProbability < 0 || c.WinProbability > 1 {
		return invalid("win probability %.4f must be in [0,1]", c.WinProbability)
	}
	if c.CommissionRate < 0 {
		return invalid("commission rate %.6f must not be negative", c.CommissionRate)
	}
	if c.TargetEquity <= c.RuinThreshold {
		return invalid("target equity %.2f must exceed ruin threshold %.2f", c.TargetEquity, c.RuinThreshold)
	}
	if c.MaxTrades < 1 {
		return invalid("max trades %d must be at least 1", c.MaxTrades)
	}
	if err := c.Policy.Validate(); err != nil {
		return invalid("policy: %v", err)
	}
	return nil
}
