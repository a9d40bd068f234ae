package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_DefaultsWithoutFile(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, 10, c.PagePerPage)
	assert.Equal(t, 15, c.PostSymbols)
	assert.Equal(t, 20, c.IndexCacheSeconds)
	assert.Equal(t, "mysql", c.DBDriver)
	assert.Equal(t, "/auth/login/", c.LoginURL)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
  "app": {"Port": "9000", "AdminUsernames": ["root", "editor"]},
  "database": {"Driver": "sqlite", "URI": ":memory:"},
  "feed": {"PagePerPage": 5}
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("PAGE_PER_PAGE", "7")

	c, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, ":memory:", c.DatabaseURI)
	assert.Equal(t, 7, c.PagePerPage, "environment wins over the file")
	assert.True(t, c.IsAdmin("Editor"))
	assert.False(t, c.IsAdmin("guest"))
}

func TestLoadFrom_CommaSeparatedEnvList(t *testing.T) {
	t.Setenv("ADMIN_USERNAMES", "alice, bob")
	c, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, c.AdminUsernames)
}

func TestValidate(t *testing.T) {
	base := AppConfig{AppPort: "8080", JWTSecret: "s3cret", DBDriver: "postgres", PagePerPage: 10, PostSymbols: 15}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{"valid", func(c *AppConfig) {}, false},
		{"default secret in production", func(c *AppConfig) { c.AppEnv = "production"; c.JWTSecret = DefaultJWTSecret }, true},
		{"default secret in development", func(c *AppConfig) { c.AppEnv = "development"; c.JWTSecret = DefaultJWTSecret }, false},
		{"unknown driver", func(c *AppConfig) { c.DBDriver = "oracle" }, true},
		{"zero page size", func(c *AppConfig) { c.PagePerPage = 0 }, true},
		{"missing port", func(c *AppConfig) { c.AppPort = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

func TestOpenDatabase_SQLiteMemory(t *testing.T) {
	conn, err := OpenDatabase(AppConfig{DBDriver: "sqlite", DatabaseURI: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	type probe struct{ ID uint }
	require.NoError(t, Migrate(conn, &probe{}))
	assert.True(t, conn.Migrator().HasTable(&probe{}))
}
