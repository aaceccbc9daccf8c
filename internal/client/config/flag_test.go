package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-d", "x.db", "-r", "https://r.example", "-s", "k", "-t", "2h", "-x", "out",
				"-l", "debug", "-b", "bkt", "-g", "eu-west-1", "-e", "http://minio:9000"},
			expected: &Config{
				DatabasePath: "x.db", ReferralBaseURL: "https://r.example", AdminSecret: "k",
				AdminTokenTTL: 2 * time.Hour, ExportDir: "out", LogLevel: "debug",
				S3Bucket: "bkt", S3Region: "eu-west-1", S3BaseEndpoint: "http://minio:9000",
			},
		},
		{
			name:     "unknown flags are filtered out",
			args:     []string{"-c", "cfg.json", "-zzz", "-d=y.db"},
			expected: &Config{DatabasePath: "y.db"},
		},
		{name: "bad duration", args: []string{"-t", "abc"}, wantErr: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
