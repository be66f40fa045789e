package config

import (
	"time"

	"github.com/spf13/viper"
)

type LifecycleConfig struct {
	// CompletionPolicy is who may mark a request completed: owner,
	// owner_or_helper or any_authenticated.
	CompletionPolicy   string        `yaml:"completion_policy"`
	StatsCacheTTL      time.Duration `yaml:"stats_cache_ttl"`
	LockTTL            time.Duration `yaml:"lock_ttl"`
	LockWait           time.Duration `yaml:"lock_wait"`
	RecentRatingsLimit int           `yaml:"recent_ratings_limit"`
}

func loadLifecycleConfig(v *viper.Viper) *LifecycleConfig {
	return &LifecycleConfig{
		CompletionPolicy:   getString(v, "lifecycle.completion_policy", "owner"),
		StatsCacheTTL:      getDuration(v, "lifecycle.stats_cache_ttl", 5*time.Minute),
		LockTTL:            getDuration(v, "lifecycle.lock_ttl", 10*time.Second),
		LockWait:           getDuration(v, "lifecycle.lock_wait", 5*time.Second),
		RecentRatingsLimit: getInt(v, "lifecycle.recent_ratings_limit", 5),
	}
}
