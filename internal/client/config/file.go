package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/affiliatepro/internal/flagx"
	"github.com/dmitrijs2005/affiliatepro/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO for config files. Empty fields leave the current
// value alone.
type FileConfig struct {
	DatabasePath    string         `json:"database_path" yaml:"database_path"`
	ReferralBaseURL string         `json:"referral_base_url" yaml:"referral_base_url"`
	AdminSecret     string         `json:"admin_secret" yaml:"admin_secret"`
	AdminTokenTTL   timex.Duration `json:"admin_token_ttl" yaml:"admin_token_ttl"`
	ExportDir       string         `json:"export_dir" yaml:"export_dir"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	S3Bucket        string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.ReferralBaseURL, fc.ReferralBaseURL)
	setString(&cfg.AdminSecret, fc.AdminSecret)
	setString(&cfg.ExportDir, fc.ExportDir)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3AccessKey)
	setString(&cfg.S3SecretKey, fc.S3SecretKey)
	if fc.AdminTokenTTL.Duration != 0 {
		cfg.AdminTokenTTL = fc.AdminTokenTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
