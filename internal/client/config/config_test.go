package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, ".", c.SaveDir)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url":"http://json:1","request_timeout":"30s"}`), 0o600))

	os.Args = []string{"client", "-c", path, "-a", "http://flag:2"}

	got := LoadConfig()
	want := &Config{ServerBaseURL: "http://flag:2", RequestTimeout: 30 * time.Second, SaveDir: "."}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"cmd", "-a", "http://10.0.0.1:8000", "-t", "3", "-o", "/tmp/out"},
			expected: &Config{ServerBaseURL: "http://10.0.0.1:8000", RequestTimeout: 3 * time.Second, SaveDir: "/tmp/out"},
		},
		{
			name:     "no flags",
			args:     []string{"cmd"},
			expected: &Config{ServerBaseURL: "http://127.0.0.1:8000", RequestTimeout: 15 * time.Second, SaveDir: "."},
		},
		{
			name:        "bad timeout",
			args:        []string{"cmd", "-t", "x"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseJson_InvalidPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[`), 0o600))
	os.Args = []string{"client", "-config", path}

	require.Panics(t, func() { parseJson(&Config{}) })
}
