package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = 8080
	DefaultMaxBodyBytes = 1 << 20
	DefaultReadTimeout  = 15
	DefaultWriteTimeout = 15
	DefaultIdleTimeout  = 60
)

type Config struct {
	Port         int `yaml:"port"`
	MaxBodyBytes int `yaml:"max_body_bytes"`
	// timeouts in seconds
	ReadHeaderTimeout int `yaml:"read_header_timeout"`
	ReadTimeout       int `yaml:"read_timeout"`
	WriteTimeout      int `yaml:"write_timeout"`
	IdleTimeout       int `yaml:"idle_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:              DefaultPort,
		MaxBodyBytes:      DefaultMaxBodyBytes,
		ReadHeaderTimeout: 5,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
