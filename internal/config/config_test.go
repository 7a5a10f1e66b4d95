package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points cwd and HOME at empty temp dirs so no real config is found.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv(LogLevelEnv, "")
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, cfg.IsVerbose())
}

func TestLoadConfig_EnvVerbose(t *testing.T) {
	isolate(t)
	t.Setenv(LogLevelEnv, "verbose")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.True(t, cfg.IsVerbose())
}

func TestLoadConfig_EnvOtherValueIsNotVerbose(t *testing.T) {
	isolate(t)
	t.Setenv(LogLevelEnv, "info")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.IsVerbose())
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	content := "output:\n  format: json\n  color: false\nmetrics:\n  file: out.prom\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".reporter.yaml"), []byte(content), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "out.prom", cfg.Metrics.File)
}

func TestLoadConfig_MissingExplicitFileUsesDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := LoadConfig(filepath.Join(dir, "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Output.Format)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"format":"xml"}}`), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":`), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "nested", name)

			want := DefaultConfig()
			want.Output.Format = FormatLive
			want.Output.Verbose = true
			want.Tracing.File = "spans.json"
			require.NoError(t, SaveConfig(want, path))

			got, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	isolate(t)
	assert.Equal(t, "/tmp/explicit.json", GetConfigPath("/tmp/explicit.json"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".reporter.yaml"), GetConfigPath(""))
}
