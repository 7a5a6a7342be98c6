package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
driver = "sqlite3"
path = "test.db"

[report]
pin_hash = "$2a$10$abcdefghijklmnopqrstuv"
session_secret = "0123456789abcdef0123"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_DRIVER", "DB_PASSWORD", "REDIS_PASSWORD", "REPORT_PIN_HASH", "REPORT_SESSION_SECRET", "HTTP_PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeoutDuration())
	assert.Equal(t, 3, cfg.Database.SerializationRetries)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
	assert.False(t, cfg.Redis.Enabled)

	periods, err := cfg.DomainPeriods()
	require.NoError(t, err)
	assert.Nil(t, periods)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REPORT_SESSION_SECRET", "from-env-secret-value")
	t.Setenv("REDIS_PASSWORD", "redis-pass")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env-secret-value", cfg.Report.SessionSecret)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(writeConfig(t, minimalConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_Periods(t *testing.T) {
	clearEnv(t)

	content := minimalConfig + `
[[periods]]
number = 1
start = "08:00"
end = "08:45"
blocks = [1, 2]

[[periods]]
number = 2
start = "08:50"
end = "09:35"
blocks = [1, 2]
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	periods, err := cfg.DomainPeriods()
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "08:50 - 09:35", periods[1].Time.String())
	assert.Equal(t, []int{1, 2}, periods[0].Blocks)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown driver",
			content: `
[database]
driver = "mysql"
[report]
pin_hash = "x"
session_secret = "0123456789abcdef"
`,
		},
		{
			name: "postgres without host",
			content: `
[database]
driver = "postgres"
dbname = "bookings"
[report]
pin_hash = "x"
session_secret = "0123456789abcdef"
`,
		},
		{
			name: "missing pin hash",
			content: `
[database]
driver = "sqlite3"
[report]
session_secret = "0123456789abcdef"
`,
		},
		{
			name: "short session secret",
			content: `
[database]
driver = "sqlite3"
[report]
pin_hash = "x"
session_secret = "short"
`,
		},
		{
			name: "unknown timezone",
			content: minimalConfig + `
[booking]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "bad period time",
			content: minimalConfig + `
[[periods]]
number = 1
start = "8am"
end = "09:00"
blocks = [1]
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		User:     "booking",
		Password: "it's secret",
		DBName:   "bookings",
		SSLMode:  "disable",
	}
	assert.Equal(t, `host=db port=5432 user=booking password='it\'s secret' dbname=bookings sslmode=disable`, pg.DSN())
	assert.NotContains(t, pg.Redacted(), "secret")

	lite := DatabaseConfig{Driver: "sqlite3", Path: "data/bookings.db"}
	assert.Contains(t, lite.DSN(), "data/bookings.db?")
	assert.Contains(t, lite.DSN(), "_txlock=immediate")
}
