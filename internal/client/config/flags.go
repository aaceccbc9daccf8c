package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/affiliatepro/internal/flagx"
)

var knownFlags = []string{"-d", "-r", "-s", "-t", "-x", "-l", "-b", "-g", "-e"}

// parseFlags populates Config fields from command-line flags.
//
// args is filtered with flagx.FilterArgs first, so flags meant for other
// components (such as -c) do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("affiliatepro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.ReferralBaseURL, "r", cfg.ReferralBaseURL, "base URL of referral links")
	fs.StringVar(&cfg.AdminSecret, "s", cfg.AdminSecret, "HMAC secret of admin tokens")
	fs.DurationVar(&cfg.AdminTokenTTL, "t", cfg.AdminTokenTTL, "validity of issued admin tokens")
	fs.StringVar(&cfg.ExportDir, "x", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for exports")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 endpoint")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
