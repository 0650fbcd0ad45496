// Package qcconfig loads the tunable knobs of the analyzer — grader
// thresholds, bank memory caps, and progress cadence — from an optional
// config file, falling back to the reference defaults when none is
// supplied. Environment variables are not read.
package qcconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Range is an inclusive [Low, High] band used by threshold checks that
// bracket a value on both sides (GC content).
type Range struct {
	Low  float64 `mapstructure:"low" yaml:"low"`
	High float64 `mapstructure:"high" yaml:"high"`
}

func (r Range) Contains(v float64) bool { return v >= r.Low && v <= r.High }

// Thresholds holds the pass/warn cutoffs for every grader category in
// spec.md §4.5.
type Thresholds struct {
	PerBaseQualityPass     float64 `mapstructure:"per_base_quality_pass" yaml:"per_base_quality_pass"`
	PerBaseQualityWarn     float64 `mapstructure:"per_base_quality_warn" yaml:"per_base_quality_warn"`
	PerSequenceQualityPass float64 `mapstructure:"per_sequence_quality_pass" yaml:"per_sequence_quality_pass"`
	PerSequenceQualityWarn float64 `mapstructure:"per_sequence_quality_warn" yaml:"per_sequence_quality_warn"`
	PerBaseContentPass     float64 `mapstructure:"per_base_content_pass" yaml:"per_base_content_pass"`
	PerBaseContentWarn     float64 `mapstructure:"per_base_content_warn" yaml:"per_base_content_warn"`
	GCContentPass          Range   `mapstructure:"gc_content_pass" yaml:"gc_content_pass"`
	GCContentWarn          Range   `mapstructure:"gc_content_warn" yaml:"gc_content_warn"`
	NContentPass           float64 `mapstructure:"n_content_pass" yaml:"n_content_pass"`
	NContentWarn           float64 `mapstructure:"n_content_warn" yaml:"n_content_warn"`
	DuplicationPass        float64 `mapstructure:"duplication_pass" yaml:"duplication_pass"`
	DuplicationWarn        float64 `mapstructure:"duplication_warn" yaml:"duplication_warn"`
	AdapterPass            float64 `mapstructure:"adapter_pass" yaml:"adapter_pass"`
	AdapterWarn            float64 `mapstructure:"adapter_warn" yaml:"adapter_warn"`
}

// Limits holds the bank's bounded-memory caps from spec.md §4.3/§5.
type Limits struct {
	MaxDistinctSequences int `mapstructure:"max_distinct_sequences" yaml:"max_distinct_sequences"`
	MaxLengthSample      int `mapstructure:"max_length_sample" yaml:"max_length_sample"`
	MaxAdapterReads      int `mapstructure:"max_adapter_reads" yaml:"max_adapter_reads"`
	MaxPositions         int `mapstructure:"max_positions" yaml:"max_positions"`
}

// Progress holds the side-channel emission cadence from spec.md §4.3/§4.6.
type Progress struct {
	RecordCadence int `mapstructure:"record_cadence" yaml:"record_cadence"`
	CapPercent    int `mapstructure:"cap_percent" yaml:"cap_percent"`
}

// Config is the full tunable surface of the analyzer.
type Config struct {
	Thresholds Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
	Limits     Limits     `mapstructure:"limits" yaml:"limits"`
	Progress   Progress   `mapstructure:"progress" yaml:"progress"`
}

// Default returns the reference configuration: the literal constants
// spec.md fixes for thresholds, caps, and cadence.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			PerBaseQualityPass:     25,
			PerBaseQualityWarn:     20,
			PerSequenceQualityPass: 27,
			PerSequenceQualityWarn: 20,
			PerBaseContentPass:     10,
			PerBaseContentWarn:     20,
			GCContentPass:          Range{Low: 35, High: 65},
			GCContentWarn:          Range{Low: 20, High: 80},
			NContentPass:           5,
			NContentWarn:           20,
			DuplicationPass:        20,
			DuplicationWarn:        50,
			AdapterPass:            5,
			AdapterWarn:            10,
		},
		Limits: Limits{
			MaxDistinctSequences: 100_000,
			MaxLengthSample:      100_000,
			MaxAdapterReads:      100_000,
			MaxPositions:         200,
		},
		Progress: Progress{
			RecordCadence: 1000,
			CapPercent:    99,
		},
	}
}

// Load reads configuration from a YAML/TOML/JSON file at path, layering
// it over Default(). An empty path returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %q: %w", path, err)
	}
	return cfg, nil
}
