package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/equitysim/risk"
	"github.com/rustyeddy/equitysim/sim"
)

// Config is the on-disk description of a simulation.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Policy     risk.Policy      `json:"policy" yaml:"policy"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

type AccountConfig struct {
	Currency      string  `json:"currency" yaml:"currency" validate:"required,len=3"`
	InitialEquity float64 `json:"initial_equity" yaml:"initial_equity" validate:"gt=0"`
}

type StrategyConfig struct {
	RiskFraction    float64 `json:"risk_fraction" yaml:"risk_fraction" validate:"gt=0,lte=1"`
	RewardRiskRatio float64 `json:"reward_risk_ratio" yaml:"reward_risk_ratio" validate:"gt=0"`
	WinProbability  float64 `json:"win_probability" yaml:"win_probability" validate:"gte=0,lte=1"`
	CommissionRate  float64 `json:"commission_rate" yaml:"commission_rate" validate:"gte=0"`
}

type SimulationConfig struct {
	TargetEquity  float64 `json:"target_equity" yaml:"target_equity" validate:"gtfield=RuinThreshold"`
	RuinThreshold float64 `json:"ruin_threshold" yaml:"ruin_threshold"`
	MaxTrades     int     `json:"max_trades" yaml:"max_trades" validate:"gte=1"`
	// Seed makes runs reproducible; unset means a fresh random seed.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// JournalConfig selects where finished runs are exported.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type" validate:"oneof=none csv sqlite"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" validate:"required_if=Type csv"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty" validate:"required_if=Type csv"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty" validate:"required_if=Type sqlite"`
	OrgFile    string `json:"org_file,omitempty" yaml:"org_file,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default mirrors the classic scenario: $2,000 risking 25% at 2R with a
// 75% win rate and 0.03% commission, aiming for $1,000,000.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:      "USD",
			InitialEquity: 2000,
		},
		Strategy: StrategyConfig{
			RiskFraction:    0.25,
			RewardRiskRatio: 2,
			WinProbability:  0.75,
			CommissionRate:  0.0003,
		},
		Simulation: SimulationConfig{
			TargetEquity:  sim.DefaultTargetEquity,
			RuinThreshold: 0,
			MaxTrades:     sim.DefaultMaxTrades,
		},
		Policy: risk.DefaultPolicy(),
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

// LoadFromFile reads a YAML or JSON config. Missing fields keep the
// values from Default.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if isJSON(path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes JSON for .json paths and YAML otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Validate checks field constraints, then the simulation rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return c.SimConfig().Validate()
}

func fieldMessage(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", ns, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", ns, fe.Tag())
}

// SimConfig converts the file layout into the engine's Config.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		InitialEquity:   c.Account.InitialEquity,
		RiskFraction:    c.Strategy.RiskFraction,
		RewardRiskRatio: c.Strategy.RewardRiskRatio,
		WinProbability:  c.Strategy.WinProbability,
		CommissionRate:  c.Strategy.CommissionRate,
		TargetEquity:    c.Simulation.TargetEquity,
		RuinThreshold:   c.Simulation.RuinThreshold,
		MaxTrades:       c.Simulation.MaxTrades,
		Policy:          c.Policy,
	}
}
