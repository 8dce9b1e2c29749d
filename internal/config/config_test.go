package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  port: "9000"
  jwt_signing_key: "file-key"
store:
  data_dir: "/tmp/eventdesk"
bridge:
  timeout: 5s
`), 0o644))

	t.Setenv("EVENTDESK_BRIDGE_EXECUTABLE", "/opt/console")

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, "file-key", conf.API.JWTSigningKey)
	assert.Equal(t, "/tmp/eventdesk", conf.Store.DataDir)
	assert.Equal(t, "v2", conf.Store.Layout)
	assert.Equal(t, 5*time.Second, conf.Bridge.Timeout)
	assert.Equal(t, 150*time.Millisecond, conf.Bridge.SettleDelay)
	assert.Equal(t, "/opt/console", conf.Bridge.Executable)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EVENTDESK_API_JWT_SIGNING_KEY", "env-key")

	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", conf.API.JWTSigningKey)
	assert.Equal(t, "8765", conf.API.Port)
	assert.Equal(t, 15*time.Second, conf.Bridge.Timeout)
}

func TestAPIConfigRequiresSigningKey(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.ErrorIs(t, conf.API.Validate(), ErrMissingSigningKey)

	conf.API.JWTSigningKey = "key"
	assert.NoError(t, conf.API.Validate())
}
