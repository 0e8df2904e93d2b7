package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPlanConfig returns the reference plan configuration. Values match
// the final field-season protocol: 250 m spacing, 100 placement attempts,
// 100 m margin on blocks over 10 ha and 40 m otherwise, class boundaries at
// 10 ha and 80 ha.
func DefaultPlanConfig() *PlanConfig {
	return &PlanConfig{
		MinDistanceM: 250,
		MaxAttempts:  100,
		Buffer:       BufferRule{ThresholdHa: 10, LargeM: 100, SmallM: 40},
		SizeClasses:  SizeRule{MediumMinHa: 10, LargeMinHa: 80},
		PointsPerClass: map[SizeClass]int{
			SizeSmall:  1,
			SizeMedium: 2,
			SizeLarge:  3,
		},
	}
}

// LoadPlanConfig loads the plan configuration from a YAML file, filling
// unset fields from the defaults.
func LoadPlanConfig(path string) (*PlanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plan config not found: %s", path)
		}
		return nil, fmt.Errorf("reading plan config: %w", err)
	}

	config := DefaultPlanConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing plan config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the fields a run cannot proceed without.
func (c *PlanConfig) Validate() error {
	if c.Seed == 0 {
		return fmt.Errorf("seed is required (a fixed seed makes the draw reproducible)")
	}
	if c.MinDistanceM <= 0 {
		return fmt.Errorf("min_distance_m must be positive, got %v", c.MinDistanceM)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Buffer.SmallM < 0 || c.Buffer.LargeM < 0 {
		return fmt.Errorf("buffer margins must not be negative")
	}
	if c.SizeClasses.MediumMinHa <= 0 || c.SizeClasses.LargeMinHa <= c.SizeClasses.MediumMinHa {
		return fmt.Errorf("size class boundaries must satisfy 0 < medium_min_ha < large_min_ha")
	}
	for _, class := range []SizeClass{SizeSmall, SizeMedium, SizeLarge} {
		n, ok := c.PointsPerClass[class]
		if !ok || n < 1 {
			return fmt.Errorf("points_per_class.%s must be at least 1", class)
		}
	}
	return nil
}
