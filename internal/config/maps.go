package config

import "time"

type MapsConfig struct {
	// Provider is "hybrid" (stored, offline, google, haversine) or "offline".
	Provider   string            `yaml:"provider"`
	GoogleMaps *GoogleMapsConfig `yaml:"google_maps"`
	RoadFactor float64           `yaml:"road_factor"`
	CacheTTL   time.Duration     `yaml:"cache_ttl"`
}

type GoogleMapsConfig struct {
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("DISTANCE_PROVIDER", "hybrid"),
		GoogleMaps: &GoogleMapsConfig{
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			Timeout: getEnvAsDuration("GOOGLE_MAPS_TIMEOUT", 10*time.Second),
		},
		RoadFactor: getEnvAsFloat64("DISTANCE_ROAD_FACTOR", 1.2),
		CacheTTL:   getEnvAsDuration("DISTANCE_CACHE_TTL", 24*time.Hour),
	}
}
