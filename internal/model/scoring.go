package model

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dimension names referenced by fixed rules (quality checks, derived
// bands). The full dimension set is declared by the scoring document.
const (
	DimAcademicReadiness   = "academicReadiness"
	DimPracticalPreference = "practicalPreference"
	DimSupportNeed         = "supportNeed"
)

// Recommendation path identifiers. Paths A and B are condition-gated; C is
// the fallback when neither matches.
const (
	PathA = "A"
	PathB = "B"
	PathC = "C"
)

// PathThreshold gates one recommendation path.
type PathThreshold struct {
	Conditions *ConditionSet `yaml:"conditions" json:"conditions,omitempty"`
}

// Modifier is a non-exclusive annotation attached to a result when its
// condition matches.
type Modifier struct {
	Key       string       `yaml:"key" json:"key"`
	Emphasis  string       `yaml:"emphasis" json:"emphasis"`
	Condition ConditionSet `yaml:"condition" json:"condition"`
}

// DriverTemplate names one explanation key with its gating condition.
// Declared order decides which drivers survive the maxDrivers cap, so
// templates are a list rather than a map.
type DriverTemplate struct {
	Key       string       `yaml:"key"`
	Condition ConditionSet `yaml:"condition"`
}

// ScoringConfig is the scoring document: the dimension set, the path
// thresholds, modifiers and driver templates. Loaded once, read-only.
type ScoringConfig struct {
	Dimensions []string `yaml:"dimensions"`

	Recommendations struct {
		Thresholds struct {
			A PathThreshold `yaml:"A"`
			B PathThreshold `yaml:"B"`
		} `yaml:"thresholds"`
		Modifiers []Modifier `yaml:"modifiers"`
	} `yaml:"recommendations"`

	Drivers struct {
		Templates  []DriverTemplate `yaml:"templates"`
		MaxDrivers int              `yaml:"maxDrivers"`
	} `yaml:"drivers"`
}

// LoadScoringConfig reads and parses a scoring document.
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config: %w", err)
	}

	var cfg ScoringConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scoring config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the document shape, fatal at load time.
func (c *ScoringConfig) Validate() error {
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("no dimensions declared")
	}
	if c.Drivers.MaxDrivers <= 0 {
		c.Drivers.MaxDrivers = 3
	}
	for _, d := range c.Drivers.Templates {
		if d.Key == "" {
			return fmt.Errorf("driver template with no key")
		}
	}
	for _, m := range c.Recommendations.Modifiers {
		if m.Key == "" {
			return fmt.Errorf("modifier with no key")
		}
	}
	return nil
}

// HasDimension reports whether the document declares the named dimension.
func (c *ScoringConfig) HasDimension(name string) bool {
	for _, d := range c.Dimensions {
		if d == name {
			return true
		}
	}
	return false
}

// ScoringResult is the immutable outcome of one scoring run.
type ScoringResult struct {
	Scores         map[string]int `json:"scores"`
	Recommendation string         `json:"recommendation"`
	Modifiers      []Modifier     `json:"modifiers"`
	Drivers        []string       `json:"drivers"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}
