package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Feed struct {
		URL             string `yaml:"url"`
		Path            string `yaml:"path"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
		MaxRetries      int    `yaml:"max_retries"`
	} `yaml:"feed"`
	Geocoder struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"geocoder"`
	Location struct {
		CacheTTLMinutes int      `yaml:"cache_ttl_minutes"`
		CacheBackend    string   `yaml:"cache_backend"`
		BroadAreas      []string `yaml:"broad_areas"`
	} `yaml:"location"`
	Matching Matching `yaml:"matching"`
}

// Matching holds the comparable search configuration: the relaxation ladder,
// the score weights and the relatedness/adjacency tables.
type Matching struct {
	MaxComparables int                 `yaml:"max_comparables"`
	Weights        ScoreWeights        `yaml:"weights"`
	Tiers          []TierConfig        `yaml:"tiers"`
	RelatedTypes   map[string][]string `yaml:"related_types"`
	CityAdjacency  map[string][]string `yaml:"city_adjacency"`
}

type ScoreWeights struct {
	Location float64 `yaml:"location"`
	Type     float64 `yaml:"type"`
	Size     float64 `yaml:"size"`
	Price    float64 `yaml:"price"`
}

// TierConfig describes one relaxation level. A delta of -1 or a tolerance of 0
// means the corresponding filter is not applied at that level.
type TierConfig struct {
	Level                 int     `yaml:"level"`
	ExactTypeOnly         bool    `yaml:"exact_type_only"`
	BedroomDelta          int     `yaml:"bedroom_delta"`
	BathroomDelta         int     `yaml:"bathroom_delta"`
	PriceTolerance        float64 `yaml:"price_tolerance"`
	AreaTolerance         float64 `yaml:"area_tolerance"`
	IncludeAdjacentCities bool    `yaml:"include_adjacent_cities"`
	TargetCount           int     `yaml:"target_count"`
}

func (c *Config) FeedCacheTTL() time.Duration {
	return time.Duration(c.Feed.CacheTTLMinutes) * time.Minute
}

func (c *Config) LocationCacheTTL() time.Duration {
	return time.Duration(c.Location.CacheTTLMinutes) * time.Minute
}

func (c *Config) GeocoderTimeout() time.Duration {
	return time.Duration(c.Geocoder.TimeoutSeconds) * time.Second
}

// DefaultWeights returns the baseline score weights. They are asserted
// defaults meant to be tuned through configuration, not domain truths.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{Location: 0.40, Type: 0.25, Size: 0.20, Price: 0.15}
}

// DefaultTiers returns the built-in relaxation ladder, strictest first.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{Level: 1, ExactTypeOnly: true, BedroomDelta: 0, BathroomDelta: 0, PriceTolerance: 0.20, AreaTolerance: 0.30, TargetCount: 5},
		{Level: 2, BedroomDelta: 1, BathroomDelta: 1, PriceTolerance: 0.50, AreaTolerance: 0.50, TargetCount: 5},
		{Level: 3, BedroomDelta: 2, BathroomDelta: 2, PriceTolerance: 1.00, TargetCount: 8},
		{Level: 4, BedroomDelta: -1, BathroomDelta: -1, IncludeAdjacentCities: true, TargetCount: 8},
	}
}

// DefaultRelatedTypes returns the baseline property-type relatedness table.
func DefaultRelatedTypes() map[string][]string {
	return map[string][]string{
		"villa":     {"villa", "country-house", "plot"},
		"apartment": {"apartment", "penthouse"},
		"townhouse": {"townhouse", "semi-detached"},
		"penthouse": {"penthouse", "apartment"},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	// Override with environment variables if set
	if url := os.Getenv("FEED_URL"); url != "" {
		cfg.Feed.URL = url
	}
	if path := os.Getenv("FEED_PATH"); path != "" {
		cfg.Feed.Path = path
	}
	if baseURL := os.Getenv("GEOCODER_BASE_URL"); baseURL != "" {
		cfg.Geocoder.BaseURL = baseURL
	}
	if apiKey := os.Getenv("GEOCODER_API_KEY"); apiKey != "" {
		cfg.Geocoder.APIKey = apiKey
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_PORT value: %v", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Redis.DB = dbNum
	}

	// Set default values
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Feed.CacheTTLMinutes <= 0 {
		cfg.Feed.CacheTTLMinutes = 15
	}
	if cfg.Feed.MaxRetries <= 0 {
		cfg.Feed.MaxRetries = 3
	}
	if cfg.Geocoder.TimeoutSeconds <= 0 {
		cfg.Geocoder.TimeoutSeconds = 8
	}
	if cfg.Geocoder.MaxRetries <= 0 {
		cfg.Geocoder.MaxRetries = 3
	}
	if cfg.Location.CacheTTLMinutes <= 0 {
		cfg.Location.CacheTTLMinutes = 24 * 60
	}
	if cfg.Location.CacheBackend == "" {
		cfg.Location.CacheBackend = "memory"
	}
	if cfg.Matching.MaxComparables <= 0 {
		cfg.Matching.MaxComparables = 10
	}
	if cfg.Matching.Weights == (ScoreWeights{}) {
		cfg.Matching.Weights = DefaultWeights()
	}
	if len(cfg.Matching.Tiers) == 0 {
		cfg.Matching.Tiers = DefaultTiers()
	}
	if len(cfg.Matching.RelatedTypes) == 0 {
		cfg.Matching.RelatedTypes = DefaultRelatedTypes()
	}

	// Validation
	if cfg.Feed.URL == "" && cfg.Feed.Path == "" {
		return nil, fmt.Errorf("feed.url or feed.path is required")
	}
	w := cfg.Matching.Weights
	if sum := w.Location + w.Type + w.Size + w.Price; math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("matching.weights must sum to 1.0, got %v", sum)
	}
	if cfg.Location.CacheBackend != "memory" && cfg.Location.CacheBackend != "redis" {
		return nil, fmt.Errorf("location.cache_backend must be memory or redis, got %q", cfg.Location.CacheBackend)
	}
	for i, tier := range cfg.Matching.Tiers {
		if tier.Level != i+1 {
			return nil, fmt.Errorf("matching.tiers must be ordered by level starting at 1")
		}
	}

	return &cfg, nil
}
