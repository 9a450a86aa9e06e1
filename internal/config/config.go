package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Explorer      ExplorerConfig `yaml:"explorer,omitempty"`
	Server        ServerConfig   `yaml:"server,omitempty"`
	Log           LogConfig      `yaml:"log,omitempty"`
	DaysToFetch   int            `yaml:"days_to_fetch,omitempty"` // Default for `days` and `publish` (fallback: 7)
	MQTT          MQTTConfig     `yaml:"mqtt,omitempty"`
	HomeAssistant HAConfig       `yaml:"home_assistant,omitempty"`
}

// ExplorerConfig selects the blockchain explorer
type ExplorerConfig struct {
	BaseURL string `yaml:"base_url,omitempty"` // e.g., "https://blockchain.info"
}

// ServerConfig holds the GraphQL HTTP server settings
type ServerConfig struct {
	Listen         string  `yaml:"listen,omitempty"`           // e.g., ":8080"
	RateLimitRPS   float64 `yaml:"rate_limit_rps,omitempty"`   // Per client IP; negative disables
	RateLimitBurst int     `yaml:"rate_limit_burst,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // auto, console, json
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://yourdomain.local:5050"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.btc_daily_energy"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Tokens and broker passwords live here
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Defaults returns a config with every defaulted setting filled in
func Defaults() *Config {
	var empty Config
	return &Config{
		Explorer: ExplorerConfig{BaseURL: empty.GetExplorerBaseURL()},
		Server: ServerConfig{
			Listen:         empty.GetListen(),
			RateLimitRPS:   empty.GetRateLimitRPS(),
			RateLimitBurst: empty.GetRateLimitBurst(),
		},
		Log:         LogConfig{Level: empty.GetLogLevel(), Format: empty.GetLogFormat()},
		DaysToFetch: empty.GetDaysToFetch(),
		MQTT:        MQTTConfig{TopicPrefix: empty.GetTopicPrefix()},
	}
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetExplorerBaseURL returns the explorer base URL, defaulting to blockchain.info
func (c *Config) GetExplorerBaseURL() string {
	if c.Explorer.BaseURL == "" {
		return "https://blockchain.info"
	}
	return c.Explorer.BaseURL
}

// GetDaysToFetch returns the number of days to report with a default of 7
func (c *Config) GetDaysToFetch() int {
	if c.DaysToFetch <= 0 {
		return 7
	}
	return c.DaysToFetch
}

// GetListen returns the server listen address
func (c *Config) GetListen() string {
	if c.Server.Listen == "" {
		return ":8080"
	}
	return c.Server.Listen
}

// GetRateLimitRPS returns requests per second allowed per client IP.
// Zero means unset (10); a negative value disables limiting.
func (c *Config) GetRateLimitRPS() float64 {
	if c.Server.RateLimitRPS == 0 {
		return 10
	}
	if c.Server.RateLimitRPS < 0 {
		return 0
	}
	return c.Server.RateLimitRPS
}

// GetRateLimitBurst returns the per-IP burst size
func (c *Config) GetRateLimitBurst() int {
	if c.Server.RateLimitBurst <= 0 {
		return 20
	}
	return c.Server.RateLimitBurst
}

// GetLogLevel returns the log level, defaulting to info
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// GetLogFormat returns the log format, defaulting to auto
func (c *Config) GetLogFormat() string {
	if c.Log.Format == "" {
		return "auto"
	}
	return c.Log.Format
}

// GetTopicPrefix returns the MQTT topic prefix
func (c *Config) GetTopicPrefix() string {
	if c.MQTT.TopicPrefix == "" {
		return "btcenergy"
	}
	return c.MQTT.TopicPrefix
}
