package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/upcean"
)

// isolate points every config search path at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadWithNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := NewLoaderWithViper(viper.New()).Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, defaults.Decode.Workers, cfg.Decode.Workers)
	assert.True(t, cfg.Decode.TryReverse)
	assert.Equal(t, InputBits, cfg.Input.Format)
	assert.Equal(t, OutputTable, cfg.Output.Format)
	assert.Equal(t, 10, cfg.Encode.QuietZone)
}

func TestLoadFindsFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "upcean.yaml"), `
log_level: debug
decode:
  formats: [ean13, upc_a]
  also_inverted: true
  workers: 2
output:
  format: json
  stats: true
`)

	loader := NewLoaderWithViper(viper.New())
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "upcean.yaml", filepath.Base(loader.GetConfigFileUsed()))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Decode.AlsoInverted)
	assert.Equal(t, 2, cfg.Decode.Workers)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.Stats)

	formats, err := cfg.Formats()
	require.NoError(t, err)
	assert.Equal(t, []upcean.Format{upcean.FormatEAN13, upcean.FormatUPCA}, formats)
}

func TestLoadFindsFileInXDGConfigHome(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "upcean", "upcean.yaml"), "input:\n  format: runs\n")

	cfg, err := NewLoaderWithViper(viper.New()).Load()
	require.NoError(t, err)
	assert.Equal(t, InputRuns, cfg.Input.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "upcean.yaml"), "output:\n  format: json\n")
	t.Setenv("UPCEAN_OUTPUT_FORMAT", "yaml")
	t.Setenv("UPCEAN_DECODE_TRY_REVERSE", "false")
	t.Setenv("UPCEAN_DECODE_FORMATS", "ean8,upc-e")

	cfg, err := NewLoaderWithViper(viper.New()).Load()
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, cfg.Output.Format)
	assert.False(t, cfg.Decode.TryReverse)

	opts, err := cfg.DecodeOptions()
	require.NoError(t, err)
	assert.Equal(t, []upcean.Format{upcean.FormatEAN8, upcean.FormatUPCE}, opts.PossibleFormats)
}

func TestLoadWithFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "encode:\n  module_width: 3\n  quiet_zone: 7\n")

	cfg, err := NewLoaderWithViper(viper.New()).LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Encode.ModuleWidth)
	assert.Equal(t, 7, cfg.Encode.QuietZone)

	_, err = NewLoaderWithViper(viper.New()).LoadWithFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "decode:\n  formats: [qr_code]\n")

	_, err := NewLoaderWithViper(viper.New()).LoadWithFile(path)
	assert.ErrorContains(t, err, "configuration validation failed")

	writeFile(t, path, "decode: [unterminated\n")
	_, err = NewLoaderWithViper(viper.New()).LoadWithFile(path)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestGetConfigSearchPaths(t *testing.T) {
	dir := isolate(t)
	paths := GetConfigSearchPaths()
	assert.Equal(t, []string{".", dir, filepath.Join(dir, "xdg", "upcean"), "/etc/upcean"}, paths)
}
