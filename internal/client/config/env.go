package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "AFFILIATEPRO_"

// parseEnv loads envFile (if it exists) into the process environment without
// overriding variables that are already set, then overlays cfg with the
// AFFILIATEPRO_* variables.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"DATABASE_PATH":     &cfg.DatabasePath,
		"REFERRAL_BASE_URL": &cfg.ReferralBaseURL,
		"ADMIN_SECRET":      &cfg.AdminSecret,
		"EXPORT_DIR":        &cfg.ExportDir,
		"LOG_LEVEL":         &cfg.LogLevel,
		"S3_BUCKET":         &cfg.S3Bucket,
		"S3_REGION":         &cfg.S3Region,
		"S3_BASE_ENDPOINT":  &cfg.S3BaseEndpoint,
		"S3_ACCESS_KEY":     &cfg.S3AccessKey,
		"S3_SECRET_KEY":     &cfg.S3SecretKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "ADMIN_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sADMIN_TOKEN_TTL: %w", envPrefix, err)
		}
		cfg.AdminTokenTTL = d
	}
	return nil
}
