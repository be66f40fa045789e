package config

import (
	"github.com/spf13/viper"
)

type EventsConfig struct {
	RedisEnabled bool   `yaml:"redis_enabled"`
	RedisChannel string `yaml:"redis_channel"`
	SNSEnabled   bool   `yaml:"sns_enabled"`
	SNSRegion    string `yaml:"sns_region"`
	SNSTopicArn  string `yaml:"sns_topic_arn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	Colors bool   `yaml:"colors"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Dist        string `yaml:"dist"`
}

func loadEventsConfig(v *viper.Viper) *EventsConfig {
	return &EventsConfig{
		RedisEnabled: getBool(v, "events.redis_enabled", false),
		RedisChannel: getString(v, "events.redis_channel", "neighborhub:events"),
		SNSEnabled:   getBool(v, "events.sns_enabled", false),
		SNSRegion:    getString(v, "events.sns_region", "us-east-1"),
		SNSTopicArn:  getString(v, "events.sns_topic_arn", ""),
	}
}

func loadLogConfig(v *viper.Viper) *LogConfig {
	return &LogConfig{
		Level:  getString(v, "log.level", "info"),
		Format: getString(v, "log.format", "text"),
		Output: getString(v, "log.output", "stdout"),
		Colors: getBool(v, "log.colors", false),
	}
}

func loadSentryConfig(v *viper.Viper) *SentryConfig {
	return &SentryConfig{
		DSN:         getString(v, "sentry.dsn", ""),
		Environment: getString(v, "sentry.environment", "development"),
		Dist:        getString(v, "sentry.dist", ""),
	}
}
