package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-d", "app.db"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-d", "app.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-config=alt.json"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "-config=alt.json"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-d", "a.db", "-l", "debug", "-s", "k"},
			allowedFlags: []string{"-s", "-d"},
			want:         []string{"-d", "a.db", "-s", "k"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/short.json", ConfigFileFlag([]string{"-c", "/etc/short.json"}))
	assert.Equal(t, "/etc/long.yaml", ConfigFileFlag([]string{"-d", "x.db", "-config", "/etc/long.yaml"}))
	assert.Equal(t, "/etc/2.json", ConfigFileFlag([]string{"-c", "/etc/1.json", "-config=/etc/2.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-x", "1"}))
	assert.Empty(t, ConfigFileFlag(nil))
}
