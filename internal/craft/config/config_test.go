package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), f)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"local_only": true,
		"batch_limit": 10,
		"request_cooldown": 1.5
	}`), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.True(t, f.LocalOnly)
	require.Equal(t, 10, f.BatchLimit)
	require.Equal(t, 1.5, f.RequestCooldown)
	require.True(t, f.ErrorRetry, "unset fields keep their default")
}

func TestOracleConfigAndHandlerConfigProjectFields(t *testing.T) {
	f := Default()
	f.LocalOnly = true
	f.RequestAddr = "https://example.test/pair"

	oc := f.OracleConfig()
	require.Equal(t, "https://example.test/pair", oc.RequestAddr)
	require.Equal(t, f.BatchLimit, oc.BatchLimit)

	hc := f.HandlerConfig()
	require.True(t, hc.LocalOnly)
	require.Equal(t, f.NothingVerification, hc.NothingVerification)
}
