package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neoenginex/gemsutopia/internal/pkg/config"
)

func TestAdminToken(t *testing.T) {
	config.GlobalConfig.JWT.Secret = "test_secret_test_secret_test_secret_1234"
	config.GlobalConfig.JWT.Expire = 2

	t.Run("round trip", func(t *testing.T) {
		token, expiresAt, err := GenerateAdminToken("admin@gemsutopia.ca")
		require.NoError(t, err)
		require.NotNil(t, expiresAt)
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), *expiresAt, time.Minute)

		claims, err := ParseAdminToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@gemsutopia.ca", claims.Email)
		assert.True(t, claims.IsAdmin)
		assert.Equal(t, "gemsutopia", claims.Issuer)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, _, err := GenerateAdminToken("admin@gemsutopia.ca")
		require.NoError(t, err)

		config.GlobalConfig.JWT.Secret = "another_secret_another_secret_another_00"
		defer func() {
			config.GlobalConfig.JWT.Secret = "test_secret_test_secret_test_secret_1234"
		}()

		_, err = ParseAdminToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseAdminToken("not.a.token")
		assert.Error(t, err)
	})
}
