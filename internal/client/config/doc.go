// Package config loads runtime configuration for the AffiliatePro CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables prefixed AFFILIATEPRO_, optionally loaded from a
//     .env file in the working directory.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-r string   base URL of referral links
//	-s string   HMAC secret of admin tokens (empty disables admin mode)
//	-t duration validity of tokens issued by admintoken
//	-x string   export directory
//	-l string   log level: debug, info, warn, error
//	-b string   S3 bucket for exports (empty disables upload)
//	-g string   S3 region
//	-e string   S3 endpoint, e.g. a MinIO URL
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "24h" or integer
// nanoseconds:
//
//	{
//	  "database_path": "affiliatepro.db",
//	  "admin_secret": "change-me",
//	  "admin_token_ttl": "24h",
//	  "s3_bucket": "exports"
//	}
package config
