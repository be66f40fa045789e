package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "neighborhub"

type Config struct {
	App       *AppConfig       `yaml:"app"`
	Log       *LogConfig       `yaml:"log"`
	Database  *DatabaseConfig  `yaml:"database"`
	Redis     *RedisConfig     `yaml:"redis"`
	WebSocket *WebSocketConfig `yaml:"websocket"`
	Security  *SecurityConfig  `yaml:"security"`
	Lifecycle *LifecycleConfig `yaml:"lifecycle"`
	Events    *EventsConfig    `yaml:"events"`
	Sentry    *SentryConfig    `yaml:"sentry"`
}

type AppConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	Debug           bool          `yaml:"debug"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type SecurityConfig struct {
	JWTSecret          string   `yaml:"jwt_secret"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
}

// Load reads configuration from file (optional; "config.yaml" in the working
// directory is tried when empty) and NEIGHBORHUB_* environment variables,
// e.g. NEIGHBORHUB_DATABASE_URI for database.uri.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{
		App:       loadAppConfig(v),
		Log:       loadLogConfig(v),
		Database:  loadDatabaseConfig(v),
		Redis:     loadRedisConfig(v),
		WebSocket: loadWebSocketConfig(v),
		Security:  loadSecurityConfig(v),
		Lifecycle: loadLifecycleConfig(v),
		Events:    loadEventsConfig(v),
		Sentry:    loadSentryConfig(v),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return errors.New("security.jwt_secret is required")
	}
	if c.IsProduction() && c.Security.JWTSecret == defaultJWTSecret {
		return errors.New("security.jwt_secret must be changed in production")
	}
	switch c.Database.Driver {
	case DriverMongoDB, DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.Events.SNSEnabled && c.Events.SNSTopicArn == "" {
		return errors.New("events.sns_topic_arn is required when events.sns_enabled is set")
	}
	if c.Events.RedisEnabled && !c.Redis.Enabled {
		return errors.New("events.redis_enabled requires redis.enabled")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

const defaultJWTSecret = "change-me-neighborhub-secret"

func loadAppConfig(v *viper.Viper) *AppConfig {
	return &AppConfig{
		Name:            getString(v, "app.name", "NeighborHub"),
		Version:         getString(v, "app.version", "1.0.0"),
		Environment:     getString(v, "app.environment", "development"),
		Port:            getInt(v, "app.port", 8080),
		Host:            getString(v, "app.host", "0.0.0.0"),
		Debug:           getBool(v, "app.debug", false),
		ShutdownTimeout: getDuration(v, "app.shutdown_timeout", 15*time.Second),
	}
}

func loadSecurityConfig(v *viper.Viper) *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getString(v, "security.jwt_secret", defaultJWTSecret),
		CORSAllowedOrigins: getStringSlice(v, "security.cors_allowed_origins", []string{"*"}),
		TrustedProxies:     getStringSlice(v, "security.trusted_proxies", []string{}),
	}
}

func getString(v *viper.Viper, key, defaultValue string) string {
	v.SetDefault(key, defaultValue)
	return v.GetString(key)
}

func getInt(v *viper.Viper, key string, defaultValue int) int {
	v.SetDefault(key, defaultValue)
	return v.GetInt(key)
}

func getBool(v *viper.Viper, key string, defaultValue bool) bool {
	v.SetDefault(key, defaultValue)
	return v.GetBool(key)
}

func getDuration(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	v.SetDefault(key, defaultValue)
	return v.GetDuration(key)
}

// getStringSlice accepts YAML lists as well as comma-separated env values.
func getStringSlice(v *viper.Viper, key string, defaultValue []string) []string {
	v.SetDefault(key, defaultValue)

	var result []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
