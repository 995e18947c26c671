package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		JWT: JWTConfig{Secret: "test_secret_test_secret_test_secret_1234", Expire: 24},
		Database: DatabaseConfig{
			Host:   "localhost",
			User:   "gemsutopia",
			DBName: "gemsutopia",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Admin: AdminConfig{Emails: []string{"admin@gemsutopia.ca"}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("placeholder jwt secret rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "change_me"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty admin allowlist rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.Emails = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("incomplete database rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.DBName = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestIsAdminEmail(t *testing.T) {
	cfg := validConfig()

	assert.True(t, cfg.IsAdminEmail("admin@gemsutopia.ca"))
	assert.True(t, cfg.IsAdminEmail("ADMIN@Gemsutopia.CA"))
	assert.False(t, cfg.IsAdminEmail("someone@else.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}
