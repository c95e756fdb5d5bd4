package summarize

import (
	"errors"
	"fmt"
	"math"
)

// Config carries the tunables shared by every strategy.
type Config struct {
	// MetricLabel names the measured quantity in generated text.
	MetricLabel string `json:"metric_label" yaml:"metric_label"`
	// Eps is the segmentation tolerance in normalized coordinates.
	Eps float64 `json:"eps" yaml:"eps"`
	// EMAAlpha is the exponential smoothing factor, in (0,1].
	EMAAlpha float64 `json:"ema_alpha" yaml:"ema_alpha"`
	// CenteredHalfWindow is the half width of the centered moving average
	// used as the trend in weekday/weekend decomposition.
	CenteredHalfWindow int `json:"centered_half_window" yaml:"centered_half_window"`
	// DiagonalAngle is the reference angle that scales direction memberships.
	DiagonalAngle float64 `json:"diagonal_angle" yaml:"diagonal_angle"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MetricLabel:        "value",
		Eps:                0.01,
		EMAAlpha:           0.3,
		CenteredHalfWindow: 4,
		DiagonalAngle:      math.Pi / 4,
	}
}

// WithDefaults fills fields whose zero value is not meaningful. Eps and
// CenteredHalfWindow are valid at zero and are left alone; start from
// DefaultConfig to get their defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.MetricLabel == "" {
		c.MetricLabel = d.MetricLabel
	}
	if c.EMAAlpha == 0 {
		c.EMAAlpha = d.EMAAlpha
	}
	if c.DiagonalAngle == 0 {
		c.DiagonalAngle = d.DiagonalAngle
	}
	return c
}

// ErrInvalidConfig is matched by every *ConfigError.
var ErrInvalidConfig = errors.New("invalid summarization config")

// ConfigError reports one rejected configuration field.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Eps) || c.Eps < 0:
		return &ConfigError{Field: "eps", Value: c.Eps, Reason: "must be >= 0"}
	case math.IsNaN(c.EMAAlpha) || c.EMAAlpha <= 0 || c.EMAAlpha > 1:
		return &ConfigError{Field: "ema_alpha", Value: c.EMAAlpha, Reason: "must be in (0,1]"}
	case c.CenteredHalfWindow < 0:
		return &ConfigError{Field: "centered_half_window", Value: c.CenteredHalfWindow, Reason: "must be >= 0"}
	case math.IsNaN(c.DiagonalAngle) || c.DiagonalAngle <= 0 || c.DiagonalAngle > math.Pi/2:
		return &ConfigError{Field: "diagonal_angle", Value: c.DiagonalAngle, Reason: "must be in (0,π/2]"}
	}
	return nil
}

// prepare applies defaults and validates; every strategy calls it first.
func prepare(c Config) (Config, error) {
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
