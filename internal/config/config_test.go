package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customers-viewer/internal/cache"
)

func TestBuildDefaults(t *testing.T) {
	t.Setenv("APPSYNC_GRAPHQL_ENDPOINT", "https://example.appsync-api.ap-southeast-2.amazonaws.com/graphql")
	t.Setenv("APPSYNC_API_KEY", "da2-test")

	cfg, err := Build(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err, "missing .env file must be tolerated")

	require.Equal(t, "da2-test", cfg.AppSyncCfg.APIKey)
	require.Equal(t, 10*time.Second, cfg.AppSyncCfg.Timeout)
	require.Equal(t, 3000, cfg.HTTPCfg.Port)
	require.Equal(t, cache.BackendMemory, cfg.CacheCfg.Backend)
	require.Equal(t, cache.NetworkOnly, cfg.CacheCfg.FetchPolicy)
	require.Equal(t, 30*time.Minute, cfg.SessionCfg.IdleTimeout)
	require.Equal(t, "info", cfg.LogCfg.Level)
}

func TestBuildFromDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APPSYNC_GRAPHQL_ENDPOINT=http://localhost:20002/graphql\n" +
		"APPSYNC_API_KEY=da2-local\n" +
		"CACHE_BACKEND=redis\n" +
		"CACHE_FETCH_POLICY=cache-first\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		for _, k := range []string{"APPSYNC_GRAPHQL_ENDPOINT", "APPSYNC_API_KEY", "CACHE_BACKEND", "CACHE_FETCH_POLICY"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Build(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:20002/graphql", cfg.AppSyncCfg.Endpoint)
	require.Equal(t, cache.BackendRedis, cfg.CacheCfg.Backend)
	require.Equal(t, cache.CacheFirst, cfg.CacheCfg.FetchPolicy)
}

func TestBuildRequiresBackend(t *testing.T) {
	t.Setenv("APPSYNC_GRAPHQL_ENDPOINT", "")
	_ = os.Unsetenv("APPSYNC_GRAPHQL_ENDPOINT")
	t.Setenv("APPSYNC_API_KEY", "da2-test")

	_, err := Build(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err, "endpoint is required")
}

func TestBuildRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("APPSYNC_GRAPHQL_ENDPOINT", "http://localhost/graphql")
	t.Setenv("APPSYNC_API_KEY", "da2-test")
	t.Setenv("CACHE_FETCH_POLICY", "cache-only")

	_, err := Build(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "CACHE_FETCH_POLICY")
}

func TestBuildRejectsNonPositiveSessionDurations(t *testing.T) {
	t.Setenv("APPSYNC_GRAPHQL_ENDPOINT", "http://localhost/graphql")
	t.Setenv("APPSYNC_API_KEY", "da2-test")

	for _, tc := range []struct {
		name  string
		value string
	}{
		{name: "SESSION_IDLE_TIMEOUT", value: "0s"},
		{name: "SESSION_IDLE_TIMEOUT", value: "-1m"},
		{name: "SESSION_SWEEP_INTERVAL", value: "0s"},
	} {
		t.Log(tc.name + "=" + tc.value + " is rejected")
		{
			t.Setenv(tc.name, tc.value)

			_, err := Build(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.name)

			require.NoError(t, os.Unsetenv(tc.name))
		}
	}
}
