package survey

import "github.com/paulmach/orb"

// SizeClass buckets a site polygon by area. The class drives how many
// deployment points a site receives.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Site is a candidate deployment island or shoreline area. Geometry is held
// in the working projected CRS (UTM zone 19N) after loading.
type Site struct {
	Name    string
	Polygon orb.Polygon
	AreaHa  float64
	Class   SizeClass
	Blocks  []*Block
}

// Block is a sub-region of a site from which exactly one sensor point is
// drawn. The owning site is derived from the block name ("Great Wass 2"
// belongs to "Great Wass") and validated at load time.
type Block struct {
	Name    string
	Site    string
	Polygon orb.Polygon
	AreaHa  float64
	MarginM float64 // inward shoreline margin applied before sampling
}

// DeployPoint is a sampled ARU location, named after its source block.
// Coordinates stay in the working projected CRS until export.
type DeployPoint struct {
	Name  string
	Block string
	Point orb.Point
}

// BufferRule selects the inward shoreline margin by block area.
type BufferRule struct {
	ThresholdHa float64 `yaml:"threshold_ha"`
	LargeM      float64 `yaml:"large_m"`
	SmallM      float64 `yaml:"small_m"`
}

// MarginFor returns the margin for a block of the given area. Blocks
// strictly over the threshold get the large margin.
func (r BufferRule) MarginFor(areaHa float64) float64 {
	if areaHa > r.ThresholdHa {
		return r.LargeM
	}
	return r.SmallM
}

// SizeRule holds the class boundaries in hectares. Boundaries tie to the
// larger class: a site of exactly MediumMinHa is medium.
type SizeRule struct {
	MediumMinHa float64 `yaml:"medium_min_ha"`
	LargeMinHa  float64 `yaml:"large_min_ha"`
}

// Classify assigns a size class. Total over all areas: exactly one class
// applies to any value.
func (r SizeRule) Classify(areaHa float64) SizeClass {
	switch {
	case areaHa < r.MediumMinHa:
		return SizeSmall
	case areaHa < r.LargeMinHa:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// MQTTConfig holds optional broker settings for publishing final points to
// field tablets. An empty broker disables publishing.
type MQTTConfig struct {
	Broker   string `yaml:"broker,omitempty"`
	Topic    string `yaml:"topic,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// PlanConfig is the survey plan configuration file. The seed is recorded
// here so every run of a plan is reproducible from the file alone.
type PlanConfig struct {
	Seed           int64             `yaml:"seed"`
	MinDistanceM   float64           `yaml:"min_distance_m"`
	MaxAttempts    int               `yaml:"max_attempts"`
	Buffer         BufferRule        `yaml:"buffer"`
	SizeClasses    SizeRule          `yaml:"size_classes"`
	PointsPerClass map[SizeClass]int `yaml:"points_per_class"`
	SoloSites      []string          `yaml:"solo_sites,omitempty"`
	MQTT           MQTTConfig        `yaml:"mqtt,omitempty"`
}

// IsSolo reports whether the named site is known a priori to hold a single
// point with no neighbour on its island. Such points are excluded from the
// nearest-neighbour reduction.
func (c *PlanConfig) IsSolo(site string) bool {
	for _, s := range c.SoloSites {
		if s == site {
			return true
		}
	}
	return false
}
