package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/elcruzo/topkbench/internal/generator"
	"github.com/elcruzo/topkbench/internal/selection"
	"github.com/spf13/viper"
)

type Config struct {
	Bench     BenchConfig       `mapstructure:"bench"`
	Generator generator.Options `mapstructure:"generator"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
	Logging   LoggingConfig     `mapstructure:"logging"`
}

type BenchConfig struct {
	K       int          `mapstructure:"k"`
	Trials  int          `mapstructure:"trials"`
	Workers int          `mapstructure:"workers"`
	Verify  bool         `mapstructure:"verify"`
	Pivot   string       `mapstructure:"pivot"`
	Scale   int          `mapstructure:"scale"`
	Cases   []CaseConfig `mapstructure:"cases"`
}

// CaseConfig fields left at zero inherit the bench-level values.
type CaseConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	Size      int    `mapstructure:"size"`
	K         int    `mapstructure:"k"`
	Trials    int    `mapstructure:"trials"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Port      int    `mapstructure:"port"`
	Namespace string `mapstructure:"namespace"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TOPKBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := defaultConfig()

	v.SetDefault("bench.k", def.Bench.K)
	v.SetDefault("bench.trials", def.Bench.Trials)
	v.SetDefault("bench.workers", def.Bench.Workers)
	v.SetDefault("bench.verify", def.Bench.Verify)
	v.SetDefault("bench.pivot", def.Bench.Pivot)
	v.SetDefault("bench.scale", def.Bench.Scale)
	v.SetDefault("bench.cases", defaultCases())

	v.SetDefault("generator.min", def.Generator.Min)
	v.SetDefault("generator.max", def.Generator.Max)
	v.SetDefault("generator.seed", def.Generator.Seed)
	v.SetDefault("generator.tail", def.Generator.Tail)
	v.SetDefault("generator.spikes", def.Generator.Spikes)

	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.port", def.Metrics.Port)
	v.SetDefault("metrics.namespace", def.Metrics.Namespace)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func defaultCases() []CaseConfig {
	return []CaseConfig{
		{Algorithm: "topK", Size: 100_000_000},
		{Algorithm: "topKSelect", Size: 10_000_000},
	}
}

func defaultConfig() *Config {
	return &Config{
		Bench: BenchConfig{
			K:       10,
			Trials:  1,
			Workers: 1,
			Verify:  true,
			Pivot:   "last",
			Scale:   1,
			Cases:   defaultCases(),
		},
		Generator: generator.DefaultOptions(),
		Metrics: MetricsConfig{
			Enabled:   false,
			Port:      9090,
			Namespace: "topkbench",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (c *Config) Validate() error {
	if c.Bench.K < 0 {
		return fmt.Errorf("k cannot be negative: %d", c.Bench.K)
	}

	if c.Bench.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}

	if c.Bench.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}

	if c.Bench.Scale <= 0 {
		return fmt.Errorf("scale must be positive")
	}

	if _, ok := selection.ParsePivotStrategy(c.Bench.Pivot); !ok {
		return fmt.Errorf("invalid pivot strategy: %s", c.Bench.Pivot)
	}

	if len(c.Bench.Cases) == 0 {
		return fmt.Errorf("at least one bench case is required")
	}

	for i, cs := range c.Bench.Cases {
		if cs.Algorithm == "" {
			return fmt.Errorf("case %d: algorithm is required", i)
		}
		if cs.Size < 0 {
			return fmt.Errorf("case %d: size cannot be negative", i)
		}
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port: %d", c.Metrics.Port)
	}

	return nil
}

// ResolvedCases returns the cases with sizes divided by Scale and zero k or
// trials filled from the bench-level values.
func (b BenchConfig) ResolvedCases() []CaseConfig {
	scale := b.Scale
	if scale <= 0 {
		scale = 1
	}

	cases := make([]CaseConfig, 0, len(b.Cases))
	for _, cc := range b.Cases {
		cc.Size /= scale
		if cc.K == 0 {
			cc.K = b.K
		}
		if cc.Trials == 0 {
			cc.Trials = b.Trials
		}
		cases = append(cases, cc)
	}
	return cases
}

// ValidateAlgorithms rejects cases naming an algorithm outside known.
func (c *Config) ValidateAlgorithms(known []string) error {
	names := make(map[string]bool, len(known))
	for _, name := range known {
		names[name] = true
	}
	for i, cs := range c.Bench.Cases {
		if !names[cs.Algorithm] {
			return fmt.Errorf("case %d: unknown algorithm %q (known: %s)", i, cs.Algorithm, strings.Join(known, ", "))
		}
	}
	return nil
}
