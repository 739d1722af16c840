package configpkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	return dir
}

func TestLoad(t *testing.T) {
	dir := writeEnv(t, "SERVER_ADDRESS=127.0.0.1:9090\nGO_ENV=development\nDEFAULT_PAGE_SIZE=25\n")

	c, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, Config{
		ServerAddress:   "127.0.0.1:9090",
		Environment:     "development",
		MetricsPath:     "/metrics",
		DefaultPageSize: 25,
	}, c)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeEnv(t, "SERVER_ADDRESS=127.0.0.1:9090\n")

	t.Setenv("SERVER_ADDRESS", "0.0.0.0:7070")
	t.Setenv("METRICS_PATH", "/internal/metrics")

	c, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:7070", c.ServerAddress)
	require.Equal(t, "/internal/metrics", c.MetricsPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
