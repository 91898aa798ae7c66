package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "textil", cfg.DB.DBName)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, "COP", cfg.Reports.Currency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_NAME", "textil_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PORT", "no-es-numero")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "textil_test", cfg.DB.DBName)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido cae al valor por defecto")
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "textil", Password: "p@ss:word", DBName: "textil", SSLMode: "disable"}
	assert.Equal(t, "postgres://textil:p%40ss%3Aword@db:5432/textil?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "production"}, HTTP: HTTPConfig{Port: 8080}}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "x"
	assert.NoError(t, cfg.Validate())

	dev := &Config{App: AppConfig{Env: "development"}, HTTP: HTTPConfig{Port: 8080}}
	assert.NoError(t, dev.Validate())
}
