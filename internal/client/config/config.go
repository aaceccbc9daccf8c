package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the AffiliatePro CLI.
type Config struct {
	DatabasePath    string
	ReferralBaseURL string
	AdminSecret     string
	AdminTokenTTL   time.Duration
	ExportDir       string
	LogLevel        string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "affiliatepro.db"
	c.ReferralBaseURL = "https://affiliatepro.com"
	c.AdminTokenTTL = 24 * time.Hour
	c.ExportDir = "exports"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, the config file, the environment
// and finally args (usually os.Args[1:]). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
