package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/lthresh/pkg/thresh"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnvDefaults(t *testing.T) {
	c, err := configFromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, thresh.MethodAdaptive, c.Method)
	assert.Equal(t, DefaultUpdateRepo, c.UpdateRepo)
	assert.Nil(t, c.Window)
	assert.False(t, c.Verbose)
	assert.Equal(t, thresh.DefaultOptions(thresh.MethodSauvola), c.Options(thresh.MethodSauvola))
}

func TestConfigFromEnvOverrides(t *testing.T) {
	c, err := configFromEnv(envMap(map[string]string{
		EnvMethod:          " Niblack ",
		EnvWindow:          "15",
		EnvK:               "-0.3",
		EnvEpsilon:         "1e-8",
		EnvGlobalThreshold: "99",
		EnvUpdateRepo:      "someone/fork",
		EnvVerbose:         "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, thresh.MethodNiblack, c.Method)
	assert.Equal(t, "someone/fork", c.UpdateRepo)
	assert.True(t, c.Verbose)

	o := c.Options(c.Method)
	assert.Equal(t, thresh.Options{Method: thresh.MethodNiblack, Window: 15, K: -0.3, Epsilon: 1e-8, Threshold: 99}, o)
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	bad := []map[string]string{
		{EnvMethod: "otsu"},
		{EnvWindow: "0"},
		{EnvWindow: "-3"},
		{EnvK: "abc"},
		{EnvEpsilon: "-1"},
		{EnvGlobalThreshold: "5000000000"},
		{EnvVerbose: "sometimes"},
	}
	for _, m := range bad {
		_, err := configFromEnv(envMap(m))
		assert.Error(t, err, "%v", m)
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	t.Setenv(EnvWindow, "")
	require.NoError(t, os.Unsetenv(EnvWindow))
	t.Setenv(EnvK, "0.5")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LTHRESH_WINDOW=11\nLTHRESH_K=0.9\n"), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, c.Window)
	assert.Equal(t, uint(11), *c.Window)
	// the real environment wins over the file
	require.NotNil(t, c.K)
	assert.Equal(t, 0.5, *c.K)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
