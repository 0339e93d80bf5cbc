package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jgoulah/energycalc/internal/logger"
)

// Config holds the application configuration
type Config struct {
	Household     HouseholdConfig `yaml:"household"`
	Rate          float64         `yaml:"rate,omitempty"`      // Cost per kWh, 0 hides cost estimates
	LogLevel      string          `yaml:"log_level,omitempty"` // debug, info, warn, error
	MQTT          MQTTConfig      `yaml:"mqtt,omitempty"`
	HomeAssistant HAConfig        `yaml:"home_assistant,omitempty"`
}

// HouseholdConfig describes the user and which appliances they own
type HouseholdConfig struct {
	Name              string `yaml:"name,omitempty"`
	Age               int    `yaml:"age,omitempty"`
	City              string `yaml:"city,omitempty"`
	Area              string `yaml:"area,omitempty"`
	HousingType       string `yaml:"housing_type,omitempty"` // "house" or "tenement"
	HasFridge         bool   `yaml:"has_fridge"`
	HasWashingMachine bool   `yaml:"has_washing_machine"`
}

// MQTTConfig holds MQTT broker settings for publishing weekly summaries
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`                 // host:port
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "energycalc"
	ClientID    string `yaml:"client_id,omitempty"`    // default "energycalc"
}

// HAConfig holds Home Assistant HTTP API configuration
type HAConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`       // e.g., "http://homeassistant.local:8123"
	Token    string `yaml:"token"`     // Long-lived access token
	EntityID string `yaml:"entity_id"` // e.g., "sensor.weekly_energy_usage"
}

var housingTypes = []string{"house", "tenement"}

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
	cfg.Household.HousingType = strings.ToLower(strings.TrimSpace(cfg.Household.HousingType))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// May hold broker passwords and HA tokens
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// Validate checks values that would otherwise surface as confusing failures later
func (c *Config) Validate() error {
	var errs []error

	h := c.Household
	if h.Age != 0 && (h.Age < 1 || h.Age > 120) {
		errs = append(errs, fmt.Errorf("household.age %d out of range 1-120", h.Age))
	}
	if h.HousingType != "" && !contains(housingTypes, h.HousingType) {
		errs = append(errs, fmt.Errorf("household.housing_type %q must be one of %s", h.HousingType, strings.Join(housingTypes, ", ")))
	}
	if c.Rate < 0 {
		errs = append(errs, fmt.Errorf("rate must not be negative"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		errs = append(errs, errors.New("mqtt.broker is required when mqtt is enabled"))
	}
	if c.HomeAssistant.Enabled {
		if c.HomeAssistant.URL == "" {
			errs = append(errs, errors.New("home_assistant.url is required when enabled"))
		}
		if c.HomeAssistant.Token == "" {
			errs = append(errs, errors.New("home_assistant.token is required when enabled"))
		}
		if c.HomeAssistant.EntityID == "" {
			errs = append(errs, errors.New("home_assistant.entity_id is required when enabled"))
		}
	}

	return errors.Join(errs...)
}

// GetRate returns the cost per kWh, or 0 if not set
func (c *Config) GetRate() float64 {
	return c.Rate
}

// GetTopicPrefix returns the MQTT topic prefix with its default applied
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "energycalc"
	}
	return strings.TrimSuffix(m.TopicPrefix, "/")
}

// GetClientID returns the MQTT client id with its default applied
func (m MQTTConfig) GetClientID() string {
	if m.ClientID == "" {
		return "energycalc"
	}
	return m.ClientID
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
