package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.String("install-dir", "", "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	settings, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
	assert.Empty(t, settings.Install.Dir)
}

func TestLoadFileFormats(t *testing.T) {
	tests := map[string]string{
		"config.yaml": "log:\n  level: debug\ninstall:\n  dir: /opt/bin\n",
		"config.json": `{"log": {"level": "debug"}, "install": {"dir": "/opt/bin"}}`,
		"config.toml": "[log]\nlevel = \"debug\"\n[install]\ndir = \"/opt/bin\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			settings, err := Load(nil, writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, "debug", settings.Log.Level)
			assert.Equal(t, "/opt/bin", settings.Install.Dir)
			assert.Equal(t, "text", settings.Log.Format, "unset keys keep their defaults")
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(nil, writeFile(t, "config.ini", "level=debug"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  level: debug\n  format: json\n")
	t.Setenv("WASM_PACK_LOG_LEVEL", "info")
	t.Setenv("WASM_PACK_INSTALL_DIR", "/from/env")

	settings, err := Load(newFlags(t, "--log-level", "error"), path)
	require.NoError(t, err)

	assert.Equal(t, "error", settings.Log.Level, "flag beats env and file")
	assert.Equal(t, "json", settings.Log.Format, "file value survives")
	assert.Equal(t, "/from/env", settings.Install.Dir, "env beats default")
}

func TestLoadIgnoresUnsetFlags(t *testing.T) {
	t.Setenv("WASM_PACK_LOG_LEVEL", "info")

	settings, err := Load(newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, "info", settings.Log.Level)
}
