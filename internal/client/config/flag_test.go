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
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-s", "http://10.0.0.1:4000/api", "-t", "250ms", "-r", "3s", "-i", "1m", "-d", "/tmp/x.db", "-l", "debug", "-b", "snap"},
			expected: &Config{
				ServerURL:      "http://10.0.0.1:4000/api",
				ProbeTimeout:   250 * time.Millisecond,
				RequestTimeout: 3 * time.Second,
				StatusInterval: time.Minute,
				DatabasePath:   "/tmp/x.db",
				LogLevel:       "debug",
				S3:             S3Config{Bucket: "snap"},
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-d=local.db"},
			expected: &Config{DatabasePath: "local.db"},
		},
		{name: "bad duration", args: []string{"-t", "soon"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
