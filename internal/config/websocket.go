package config

import (
	"github.com/spf13/viper"
)

type WebSocketConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Path           string   `yaml:"path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func loadWebSocketConfig(v *viper.Viper) *WebSocketConfig {
	return &WebSocketConfig{
		Enabled:        getBool(v, "websocket.enabled", true),
		Path:           getString(v, "websocket.path", "/ws"),
		AllowedOrigins: getStringSlice(v, "websocket.allowed_origins", []string{}),
	}
}
