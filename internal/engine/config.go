package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig marks configuration that must stop a run before any
// scoring happens.
var ErrInvalidConfig = errors.New("invalid engine config")

// Weights are the vouch-score coefficients. Each weight scales a
// normalized sub-signal in [0,1]; the sum is the maximum possible
// vouch score and is clamped to 100.
type Weights struct {
	Strength        float64 `yaml:"strength"`
	Endorsements    float64 `yaml:"endorsements"`
	Recommendations float64 `yaml:"recommendations"`
	Institutional   float64 `yaml:"institutional"`
}

// Config holds every tunable constant the engine uses. It is passed
// explicitly into each computation; nothing reads ambient state.
type Config struct {
	// HalfLifeDays is the relationship-strength half-life.
	HalfLifeDays float64 `yaml:"half_life_days"`

	// InstitutionalMultiplier extends the effective half-life for
	// connections with shared employment history. Must be > 1.
	InstitutionalMultiplier float64 `yaml:"institutional_multiplier"`

	// DeepWeight and ShallowWeight are per-message contributions to
	// the cumulative base strength.
	DeepWeight    float64 `yaml:"deep_weight"`
	ShallowWeight float64 `yaml:"shallow_weight"`

	// DeepHalfLifeBonus is the maximum fractional half-life extension
	// earned by a history of deep conversations.
	DeepHalfLifeBonus float64 `yaml:"deep_half_life_bonus"`

	// DormancyWindowDays is the quiet period after which a thread
	// counts as dormant.
	DormancyWindowDays int `yaml:"dormancy_window_days"`

	// TargetCompany enables warm-path ranking when non-empty.
	TargetCompany string `yaml:"target_company"`

	Vouch Weights `yaml:"vouch_weights"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		HalfLifeDays:            180,
		InstitutionalMultiplier: 1.5,
		DeepWeight:              1.0,
		ShallowWeight:           0.25,
		DeepHalfLifeBonus:       0.5,
		DormancyWindowDays:      90,
		Vouch: Weights{
			Strength:        45,
			Endorsements:    20,
			Recommendations: 25,
			Institutional:   10,
		},
	}
}

// Validate fails fast on configuration that would make scoring
// meaningless. Called before any computation runs.
func (c Config) Validate() error {
	if c.HalfLifeDays <= 0 {
		return fmt.Errorf("%w: half_life_days must be positive, got %v", ErrInvalidConfig, c.HalfLifeDays)
	}
	if c.InstitutionalMultiplier <= 1 {
		return fmt.Errorf("%w: institutional_multiplier must be > 1, got %v", ErrInvalidConfig, c.InstitutionalMultiplier)
	}
	if c.DeepWeight < 0 || c.ShallowWeight < 0 {
		return fmt.Errorf("%w: message weights must be non-negative", ErrInvalidConfig)
	}
	if c.DeepWeight < c.ShallowWeight {
		return fmt.Errorf("%w: deep_weight must be >= shallow_weight", ErrInvalidConfig)
	}
	if c.DeepHalfLifeBonus < 0 {
		return fmt.Errorf("%w: deep_half_life_bonus must be non-negative, got %v", ErrInvalidConfig, c.DeepHalfLifeBonus)
	}
	if c.DormancyWindowDays <= 0 {
		return fmt.Errorf("%w: dormancy_window_days must be positive, got %d", ErrInvalidConfig, c.DormancyWindowDays)
	}
	if strings.TrimSpace(c.TargetCompany) != c.TargetCompany {
		return fmt.Errorf("%w: target_company has leading or trailing whitespace", ErrInvalidConfig)
	}
	for name, w := range map[string]float64{
		"strength":        c.Vouch.Strength,
		"endorsements":    c.Vouch.Endorsements,
		"recommendations": c.Vouch.Recommendations,
		"institutional":   c.Vouch.Institutional,
	} {
		if w < 0 {
			return fmt.Errorf("%w: vouch weight %q must be non-negative, got %v", ErrInvalidConfig, name, w)
		}
	}
	return nil
}
