package config

import (
	"time"

	"github.com/spf13/viper"
)

type RedisConfig struct {
	// Enabled turns on the stats cache, distributed locks and pub/sub fan-out.
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func loadRedisConfig(v *viper.Viper) *RedisConfig {
	return &RedisConfig{
		Enabled:      getBool(v, "redis.enabled", false),
		Host:         getString(v, "redis.host", "localhost"),
		Port:         getInt(v, "redis.port", 6379),
		Password:     getString(v, "redis.password", ""),
		DB:           getInt(v, "redis.db", 0),
		PoolSize:     getInt(v, "redis.pool_size", 10),
		MinIdleConns: getInt(v, "redis.min_idle_conns", 3),
		DialTimeout:  getDuration(v, "redis.dial_timeout", 5*time.Second),
		ReadTimeout:  getDuration(v, "redis.read_timeout", 3*time.Second),
		WriteTimeout: getDuration(v, "redis.write_timeout", 3*time.Second),
	}
}
