package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"PORT"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	} `yaml:"server"`
	WebSocket struct {
		PingInterval   string `yaml:"ping_interval" env:"WS_PING_INTERVAL"`
		PongWait       string `yaml:"pong_wait" env:"WS_PONG_WAIT"`
		WriteWait      string `yaml:"write_wait" env:"WS_WRITE_WAIT"`
		MaxMessageSize int64  `yaml:"max_message_size" env:"WS_MAX_MESSAGE_SIZE"`
		SendBuffer     int    `yaml:"send_buffer" env:"WS_SEND_BUFFER"`
	} `yaml:"websocket"`
	Redis struct {
		Addr      string `yaml:"addr" env:"REDIS_ADDR"`
		Password  string `yaml:"password" env:"REDIS_PASSWORD"`
		DB        int    `yaml:"db" env:"REDIS_DB"`
		TTL       string `yaml:"ttl" env:"REDIS_TTL"`
		Heartbeat string `yaml:"heartbeat" env:"REDIS_HEARTBEAT"`
	} `yaml:"redis"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
	} `yaml:"log"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error; the environment alone is used then.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
