package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	data := `{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://json",
		"secret_key": "fromjson",
		"token_validity_duration": "45m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, "fromjson", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.TokenValidityDuration)
}

func TestParseJson_NoFileFlag_LeavesDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
}
