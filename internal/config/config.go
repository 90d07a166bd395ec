package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration: route and scheduling parameters,
// provider hosts, output location, and the carrier identity table. The
// client credentials come from the environment only and are never written to
// the config file.
type Config struct {
	Route    RouteConfig    `yaml:"route"`
	Provider ProviderConfig `yaml:"provider"`
	Output   string         `yaml:"output"`
	LogLevel string         `yaml:"logLevel"`
	Carriers CarrierConfig  `yaml:"carriers"`
}

type RouteConfig struct {
	Origin           string `yaml:"origin"`
	Destination      string `yaml:"destination"`
	Currency         string `yaml:"currency"`
	Weeks            int    `yaml:"weeks"`
	OutboundWeekday  string `yaml:"outboundWeekday"`
	ReturnOffsetDays int    `yaml:"returnOffsetDays"`
	OutboundMinHour  int    `yaml:"outboundMinHour"`
	ReturnMinHour    int    `yaml:"returnMinHour"`
}

type ProviderConfig struct {
	PrimaryURL   string `yaml:"primaryUrl"`
	SecondaryURL string `yaml:"secondaryUrl"`
	MaxResults   int    `yaml:"maxResults"`
	Retries      int    `yaml:"retries"`
}

// CarrierConfig is the injected carrier table: codeshare raw codes collapse
// into one display name, and Priority fixes the order identities are
// considered when building combos.
type CarrierConfig struct {
	Names    map[string]string `yaml:"names"`
	Priority []string          `yaml:"priority"`
}

// Credentials are read from the environment at load time.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Environment  string
}

func DefaultConfig() *Config {
	return &Config{
		Route: RouteConfig{
			Origin:           "GRU",
			Destination:      "SSA",
			Currency:         "BRL",
			Weeks:            8,
			OutboundWeekday:  "friday",
			ReturnOffsetDays: 3,
			OutboundMinHour:  18,
			ReturnMinHour:    15,
		},
		Provider: ProviderConfig{
			PrimaryURL:   "https://api.amadeus.com",
			SecondaryURL: "https://test.api.amadeus.com",
			MaxResults:   50,
			Retries:      2,
		},
		Output:   "fares.json",
		LogLevel: "info",
		Carriers: CarrierConfig{
			Names: map[string]string{
				"G3": "GOL",
				"AD": "AZUL",
				"LA": "LATAM",
				"JJ": "LATAM",
				"2Z": "VOEPASS",
			},
			Priority: []string{"G3", "AD", "LA", "JJ", "2Z"},
		},
	}
}

// Load builds the effective configuration: defaults, then the yaml file if
// one exists, then environment overrides. A .env file in the working
// directory is honored for local runs.
func Load() *Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	if out := os.Getenv("FAREWATCH_OUTPUT"); out != "" {
		cfg.Output = out
	}
	if level := os.Getenv("FAREWATCH_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg
}

// CredentialsFromEnv reads the provider credentials and environment flag.
// AMADEUS_ENV accepts "primary" (default) or "secondary".
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		Environment:  strings.ToLower(os.Getenv("AMADEUS_ENV")),
	}
	if creds.Environment == "" {
		creds.Environment = "primary"
	}
	if creds.Environment != "primary" && creds.Environment != "secondary" {
		return Credentials{}, fmt.Errorf("AMADEUS_ENV must be primary or secondary, got %q", creds.Environment)
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return Credentials{}, fmt.Errorf("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}
	return creds, nil
}

// Weekday parses the configured outbound weekday name.
func (r RouteConfig) Weekday() (time.Weekday, error) {
	switch strings.ToLower(r.OutboundWeekday) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", r.OutboundWeekday)
}

func configPath() string {
	if p := os.Getenv("FAREWATCH_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "farewatch", "fares.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
