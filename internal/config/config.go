package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Gantt     GanttConfig     `yaml:"gantt"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	// Mode is "stdio" or "http".
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path enables a size-capped log file instead of the console.
	Path string `yaml:"path"`
}

// GanttConfig holds the timeline defaults used by the CLI and TUI.
type GanttConfig struct {
	ViewMode   string `yaml:"view_mode"`
	WindowDays int    `yaml:"window_days"`
	DarkMode   bool   `yaml:"dark_mode"`
	RenderMode string `yaml:"render_mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		DB: DBConfig{
			Path: "precomm.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Gantt: GanttConfig{
			ViewMode:   "week",
			WindowDays: 0,
			RenderMode: "full",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PRECOMM_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PRECOMM_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PRECOMM_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRECOMM_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("PRECOMM_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("PRECOMM_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PRECOMM_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PRECOMM_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("PRECOMM_VIEW_MODE"); mode != "" {
		cfg.Gantt.ViewMode = mode
	}
	if dark := os.Getenv("PRECOMM_DARK_MODE"); dark != "" {
		v, err := strconv.ParseBool(dark)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRECOMM_DARK_MODE: %w", err)
		}
		cfg.Gantt.DarkMode = v
	}
	if mode := os.Getenv("PRECOMM_RENDER_MODE"); mode != "" {
		cfg.Gantt.RenderMode = mode
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	c.Transport.Mode = strings.ToLower(c.Transport.Mode)
	if c.Transport.Mode != "stdio" && c.Transport.Mode != "http" {
		return fmt.Errorf("invalid transport mode %q: want stdio or http", c.Transport.Mode)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch strings.ToLower(c.Gantt.ViewMode) {
	case "day", "week", "month":
	default:
		return fmt.Errorf("invalid gantt view mode %q", c.Gantt.ViewMode)
	}
	switch strings.ToLower(c.Gantt.RenderMode) {
	case "full", "simplified", "summary":
	default:
		return fmt.Errorf("invalid gantt render mode %q", c.Gantt.RenderMode)
	}
	if c.Gantt.WindowDays < 0 {
		return fmt.Errorf("invalid gantt window_days %d", c.Gantt.WindowDays)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
