package config

type PricingConfig struct {
	BandThresholdKm int     `yaml:"band_threshold_km"`
	InsuranceRate   float64 `yaml:"insurance_rate"`
	KmPerDay        int     `yaml:"km_per_day"`
}

func loadPricingConfig() *PricingConfig {
	return &PricingConfig{
		BandThresholdKm: getEnvAsInt("PRICING_BAND_THRESHOLD_KM", 1000),
		InsuranceRate:   getEnvAsFloat64("PRICING_INSURANCE_RATE", 0.10),
		KmPerDay:        getEnvAsInt("PRICING_KM_PER_DAY", 1000),
	}
}
