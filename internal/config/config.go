package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/chartsense/internal/report"
	"github.com/KaramelBytes/chartsense/internal/summarize"
)

// Global configuration structure.
type Global struct {
	// Engine parameters. An empty MetricLabel uses the value column's name.
	MetricLabel        string  `mapstructure:"metric_label" yaml:"metric_label"`
	Eps                float64 `mapstructure:"eps" yaml:"eps"`
	EMAAlpha           float64 `mapstructure:"ema_alpha" yaml:"ema_alpha"`
	CenteredHalfWindow int     `mapstructure:"centered_half_window" yaml:"centered_half_window"`
	DiagonalAngle      float64 `mapstructure:"diagonal_angle" yaml:"diagonal_angle"`

	// Strategies run when --strategy is not given.
	Strategies []string `mapstructure:"strategies" yaml:"strategies"`

	// Output
	OutputFormat string  `mapstructure:"output_format" yaml:"output_format"`
	MinValidity  float64 `mapstructure:"min_validity" yaml:"min_validity"`
	Color        bool    `mapstructure:"color" yaml:"color"`

	// Files processed concurrently by summarize-batch.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Dir is ~/.chartsense.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".chartsense"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.chartsense/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CHARTSENSE")
	v.AutomaticEnv()

	d := summarize.DefaultConfig()
	v.SetDefault("metric_label", "")
	v.SetDefault("eps", d.Eps)
	v.SetDefault("ema_alpha", d.EMAAlpha)
	v.SetDefault("centered_half_window", d.CenteredHalfWindow)
	v.SetDefault("diagonal_angle", d.DiagonalAngle)
	v.SetDefault("strategies", []string{})
	v.SetDefault("output_format", string(report.FormatMarkdown))
	v.SetDefault("min_validity", 0.0)
	v.SetDefault("color", true)
	v.SetDefault("workers", 4)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file is fine, a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Summarize returns the engine parameters held by c.
func (c *Global) Summarize() summarize.Config {
	return summarize.Config{
		MetricLabel:        c.MetricLabel,
		Eps:                c.Eps,
		EMAAlpha:           c.EMAAlpha,
		CenteredHalfWindow: c.CenteredHalfWindow,
		DiagonalAngle:      c.DiagonalAngle,
	}
}

// Kinds parses the configured strategy names.
func (c *Global) Kinds() ([]summarize.Kind, error) {
	out := make([]summarize.Kind, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		k, err := summarize.ParseKind(s)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		"metric_label", "eps", "ema_alpha", "centered_half_window", "diagonal_angle",
		"strategies", "output_format", "min_validity", "color", "workers",
	}
}

// Get renders the value of key for display.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "metric_label":
		return c.MetricLabel, nil
	case "eps":
		return strconv.FormatFloat(c.Eps, 'g', -1, 64), nil
	case "ema_alpha":
		return strconv.FormatFloat(c.EMAAlpha, 'g', -1, 64), nil
	case "centered_half_window":
		return strconv.Itoa(c.CenteredHalfWindow), nil
	case "diagonal_angle":
		return strconv.FormatFloat(c.DiagonalAngle, 'g', -1, 64), nil
	case "strategies":
		return strings.Join(c.Strategies, ","), nil
	case "output_format":
		return c.OutputFormat, nil
	case "min_validity":
		return strconv.FormatFloat(c.MinValidity, 'g', -1, 64), nil
	case "color":
		return strconv.FormatBool(c.Color), nil
	case "workers":
		return strconv.Itoa(c.Workers), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val into key. Engine parameters are validated the same way the
// engine validates them, so a saved config never fails at run time.
func (c *Global) Set(key, val string) error {
	next := *c
	switch key {
	case "metric_label":
		next.MetricLabel = val
	case "eps", "ema_alpha", "diagonal_angle", "min_validity":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsNaN(f) {
			return fmt.Errorf("invalid float for %s: %v", key, val)
		}
		switch key {
		case "eps":
			next.Eps = f
		case "ema_alpha":
			next.EMAAlpha = f
		case "diagonal_angle":
			next.DiagonalAngle = f
		case "min_validity":
			if f < 0 || f > 1 {
				return fmt.Errorf("invalid min_validity: %v (use 0..1)", val)
			}
			next.MinValidity = f
		}
	case "centered_half_window", "workers":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		if key == "workers" {
			if i < 1 {
				return fmt.Errorf("invalid workers: %d (must be >= 1)", i)
			}
			next.Workers = i
		} else {
			next.CenteredHalfWindow = i
		}
	case "strategies":
		next.Strategies = nil
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			k, err := summarize.ParseKind(s)
			if err != nil {
				return err
			}
			next.Strategies = append(next.Strategies, k.String())
		}
	case "output_format":
		f, err := report.ParseFormat(val)
		if err != nil {
			return err
		}
		next.OutputFormat = string(f)
	case "color":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for color: %v", val)
		}
		next.Color = b
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err := next.Summarize().WithDefaults().Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
