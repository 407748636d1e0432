// Package config provides YAML-based configuration loading for Orderdesk.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Orderdesk configuration, loaded from orderdesk.yaml.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	API       APIConfig       `yaml:"api"`
	Concierge ConciergeConfig `yaml:"concierge"`
	Jobs      JobsConfig      `yaml:"jobs"`
}

// DatabaseConfig selects and parameterizes the storage backend.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "mysql"

	// sqlite
	Path string `yaml:"path"`

	// mysql
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// APIConfig holds settings for the HTTP chat API.
type APIConfig struct {
	Port int    `yaml:"port"`
	Key  string `yaml:"key"` // required X-API-Key header value; empty disables the check
}

// ConciergeConfig holds chat-platform bridge settings.
type ConciergeConfig struct {
	Platform string        `yaml:"platform"` // "slack" or "discord"; empty disables the bridge
	Channel  string        `yaml:"channel"`  // default channel to listen/post on
	Slack    SlackConfig   `yaml:"slack"`
	Discord  DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack Socket Mode credentials.
type SlackConfig struct {
	AppToken string `yaml:"app_token"` // xapp-...
	BotToken string `yaml:"bot_token"` // xoxb-...
}

// DiscordConfig holds Discord Gateway credentials.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
}

// JobsConfig holds background job settings.
type JobsConfig struct {
	// AgentReleaseCron is a 5-field cron expression for the busy-agent sweep.
	AgentReleaseCron string `yaml:"agent_release_cron"`
	// AgentBusyTTLMinutes is how long an agent may stay busy before the
	// sweep returns them to the available pool.
	AgentBusyTTLMinutes int `yaml:"agent_busy_ttl_minutes"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "orderdesk.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "orderdesk"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Jobs.AgentReleaseCron == "" {
		c.Jobs.AgentReleaseCron = "*/15 * * * *"
	}
	if c.Jobs.AgentBusyTTLMinutes == 0 {
		c.Jobs.AgentBusyTTLMinutes = 60
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite, mysql)", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.User == "" {
		errs = append(errs, "database.user is required for mysql")
	}
	switch c.Concierge.Platform {
	case "":
	case "slack":
		if c.Concierge.Slack.AppToken == "" {
			errs = append(errs, "concierge.slack.app_token is required")
		}
		if c.Concierge.Slack.BotToken == "" {
			errs = append(errs, "concierge.slack.bot_token is required")
		}
	case "discord":
		if c.Concierge.Discord.BotToken == "" {
			errs = append(errs, "concierge.discord.bot_token is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("concierge.platform %q is not supported (slack, discord)", c.Concierge.Platform))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
