package config

type SchedulerConfig struct {
	// DistanceSyncSpec is a robfig/cron spec; empty disables the job.
	DistanceSyncSpec string `yaml:"distance_sync_spec"`
}

func loadSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		DistanceSyncSpec: getEnv("DISTANCE_SYNC_SPEC", "@every 6h"),
	}
}
