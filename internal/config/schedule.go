package config

import "time"

// ScheduleConfig controls the reference zone, the initial selection and background refresh.
type ScheduleConfig struct {
	Timezone        string
	League          string
	Season          string
	RefreshInterval time.Duration
}

// RefreshEnabled reports whether periodic reloads are configured.
func (s ScheduleConfig) RefreshEnabled() bool {
	return s.RefreshInterval > 0
}

func loadSchedule() ScheduleConfig {
	return ScheduleConfig{
		Timezone:        envOrDefault(envTimezone, defaultTimezone),
		League:          envOrDefault(envDefaultLeague, ""),
		Season:          envOrDefault(envDefaultSeason, ""),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
	}
}
