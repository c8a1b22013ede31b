package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		wantErr     bool
		wantBackend string
		wantOutput  string
		wantLevel   string
	}{
		{
			name:        "overrides defaults",
			content:     "backend: sdk\noutput: yaml\nsubscription: sub-1\nlog:\n  level: DEBUG\n",
			wantBackend: BackendSDK,
			wantOutput:  "yaml",
			wantLevel:   "DEBUG",
		},
		{
			name:        "partial file keeps defaults",
			content:     "subscription: abc\n",
			wantBackend: BackendCLI,
			wantOutput:  "json",
			wantLevel:   "WARN",
		},
		{
			name:    "unknown backend",
			content: "backend: rest\n",
			wantErr: true,
		},
		{
			name:    "unknown output",
			content: "output: xml\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			content: "backend: [cli\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tc.content))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBackend, cfg.Backend)
			assert.Equal(t, tc.wantOutput, cfg.Output)
			assert.Equal(t, tc.wantLevel, cfg.Log.Level)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
}
