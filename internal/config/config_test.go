package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	got := Default()
	require.Equal(t, "v1", got.Version)
	require.Equal(t, []string{"**.md"}, got.Notebooks.Include)
	require.Equal(t, "localhost:7863", got.Server.Address)
	require.Equal(t, 5*time.Minute, got.Server.CacheTTL)
	require.False(t, got.Log.Enabled)

	// Callers get independent copies.
	got.Notebooks.Include[0] = "changed"
	require.Equal(t, []string{"**.md"}, Default().Notebooks.Include)
}

func TestParseYAML(t *testing.T) {
	t.Setenv("WEBNB_TEST_PORT", "8123")

	testCases := []struct {
		name           string
		rawConfig      string
		expectedConfig func() *Config
		errorSubstring string
	}{
		{
			name: "full config",
			rawConfig: `version: v1
notebooks:
  include:
    - "docs/**.md"
  ignore:
    - "docs/drafts/**"
server:
  address: 0.0.0.0:9000
  cache_ttl: 30s
  max_body_bytes: 1024
log:
  enabled: true
  path: /var/log/webnb.log
  verbose: true
  max_size_mb: 1
  max_backups: 2
format:
  assign_ids: true
`,
			expectedConfig: func() *Config {
				return &Config{
					Version: "v1",
					Notebooks: Notebooks{
						Include: []string{"docs/**.md"},
						Ignore:  []string{"docs/drafts/**"},
					},
					Server: Server{Address: "0.0.0.0:9000", CacheTTL: 30 * time.Second, MaxBodyBytes: 1024},
					Log:    Log{Enabled: true, Path: "/var/log/webnb.log", Verbose: true, MaxSizeMB: 1, MaxBackups: 2},
					Format: Format{AssignIDs: true},
				}
			},
		},
		{
			name:      "only version",
			rawConfig: "version: v1\n",
			expectedConfig: func() *Config {
				return Default()
			},
		},
		{
			name: "env expansion",
			rawConfig: `version: v1
server:
  address: localhost:${WEBNB_TEST_PORT}
`,
			expectedConfig: func() *Config {
				cfg := Default()
				cfg.Server.Address = "localhost:8123"
				return cfg
			},
		},
		{
			name:           "missing version",
			rawConfig:      "server:\n  address: localhost:1\n",
			errorSubstring: `unknown version: ""`,
		},
		{
			name:           "invalid yaml",
			rawConfig:      "version: [",
			errorSubstring: "failed to unmarshal version",
		},
		{
			name: "invalid address",
			rawConfig: `version: v1
server:
  address: "no port"
`,
			errorSubstring: "failed to validate config",
		},
		{
			name: "log enabled without path",
			rawConfig: `version: v1
log:
  enabled: true
  path: ""
`,
			errorSubstring: "Config.Log.Path",
		},
		{
			name: "empty include",
			rawConfig: `version: v1
notebooks:
  include: []
`,
			errorSubstring: "Config.Notebooks.Include",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ParseYAML([]byte(tc.rawConfig))

			if tc.errorSubstring != "" {
				require.ErrorContains(t, err, tc.errorSubstring)
				return
			}

			require.NoError(t, err)
			expected := tc.expectedConfig()
			require.True(
				t,
				cmp.Equal(expected, cfg, cmpopts.EquateEmpty()),
				"%s",
				cmp.Diff(expected, cfg, cmpopts.EquateEmpty()),
			)
		})
	}
}
