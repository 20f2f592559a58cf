package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Database struct {
		Host     string `env:"TESTCFG_DATABASE_HOST" default:"localhost"`
		MaxConns int32  `env:"TESTCFG_DATABASE_MAXCONNS" default:"4"`
	}
	Ticket struct {
		TTL time.Duration `env:"TESTCFG_TICKET_TTL" default:"15m"`
	}
	RabbitEnabled bool   `env:"TESTCFG_RABBITMQ_ENABLED" default:"false"`
	Mode          string `env:"TESTCFG_MODE"`
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, 15*time.Minute, cfg.Ticket.TTL)
	assert.False(t, cfg.RabbitEnabled)
	assert.Empty(t, cfg.Mode)
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TESTCFG_DATABASE_HOST", "db")
	t.Setenv("TESTCFG_RABBITMQ_ENABLED", "true")
	t.Setenv("TESTCFG_TICKET_TTL", "1h")

	var cfg testConfig
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "db", cfg.Database.Host)
	assert.True(t, cfg.RabbitEnabled)
	assert.Equal(t, time.Hour, cfg.Ticket.TTL)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("TESTCFG_DATABASE_MAXCONNS", "many")

	var cfg testConfig
	assert.Error(t, ParseEnv(&cfg))
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	assert.ErrorIs(t, ParseEnv(testConfig{}), ErrNotStructPointer)
}

func TestLoadYamlFile_FlattensSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "testyaml:\n  database:\n    host: pg\n  ticket:\n    ttl: ${TESTYAML_UNSET_VAR:-30m}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("TESTYAML_DATABASE_HOST")
		os.Unsetenv("TESTYAML_TICKET_TTL")
	})

	require.NoError(t, LoadYamlFile(path))
	assert.Equal(t, "pg", os.Getenv("TESTYAML_DATABASE_HOST"))
	assert.Equal(t, "30m", os.Getenv("TESTYAML_TICKET_TTL"))
}

func TestLoadYamlFile_ScalarsAndSubstitution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
# comment
testscalar:
  rabbitmq:
    enabled: true
    port: 5672
  admin:
    username: "radmin"
    password: ${TESTSCALAR_SECRET_SOURCE:-fallback}
    empty:
  http:
    port: 7860
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TESTSCALAR_SECRET_SOURCE", "from-env")
	t.Setenv("TESTSCALAR_HTTP_PORT", "9000")
	for _, k := range []string{"TESTSCALAR_RABBITMQ_ENABLED", "TESTSCALAR_RABBITMQ_PORT", "TESTSCALAR_ADMIN_USERNAME", "TESTSCALAR_ADMIN_PASSWORD", "TESTSCALAR_ADMIN_EMPTY"} {
		t.Cleanup(func() { os.Unsetenv(k) })
	}

	require.NoError(t, LoadYamlFile(path))

	assert.Equal(t, "true", os.Getenv("TESTSCALAR_RABBITMQ_ENABLED"))
	assert.Equal(t, "5672", os.Getenv("TESTSCALAR_RABBITMQ_PORT"))
	assert.Equal(t, "radmin", os.Getenv("TESTSCALAR_ADMIN_USERNAME"))
	assert.Equal(t, "from-env", os.Getenv("TESTSCALAR_ADMIN_PASSWORD"))
	assert.Equal(t, "9000", os.Getenv("TESTSCALAR_HTTP_PORT"), "existing env wins")
	_, set := os.LookupEnv("TESTSCALAR_ADMIN_EMPTY")
	assert.False(t, set)
}

func TestLoadYamlFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed\n"), 0o600))

	assert.Error(t, LoadYamlFile(path))
}

func TestLoadYamlFile_NoPath(t *testing.T) {
	assert.ErrorIs(t, LoadYamlFile(""), ErrNoFilePath)
}
