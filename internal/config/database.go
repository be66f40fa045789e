package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

type DatabaseConfig struct {
	// Driver selects the store: "mongodb", or "memory" for local demos.
	Driver         string        `yaml:"driver"`
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	MaxPoolSize    int           `yaml:"max_pool_size"`
	MinPoolSize    int           `yaml:"min_pool_size"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
	// Transactions requires a replica set.
	Transactions bool `yaml:"transactions"`
	Migrate      bool `yaml:"migrate"`
}

func loadDatabaseConfig(v *viper.Viper) *DatabaseConfig {
	return &DatabaseConfig{
		Driver:         getString(v, "database.driver", DriverMongoDB),
		URI:            getString(v, "database.uri", "mongodb://localhost:27017/?replicaSet=rs0"),
		Database:       getString(v, "database.database", "neighborhub"),
		MaxPoolSize:    getInt(v, "database.max_pool_size", 100),
		MinPoolSize:    getInt(v, "database.min_pool_size", 5),
		ConnectTimeout: getDuration(v, "database.connect_timeout", 10*time.Second),
		SocketTimeout:  getDuration(v, "database.socket_timeout", 30*time.Second),
		Transactions:   getBool(v, "database.transactions", true),
		Migrate:        getBool(v, "database.migrate", true),
	}
}
