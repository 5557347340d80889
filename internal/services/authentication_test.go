package services

import (
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthentication(t *testing.T) {
	auth, err := NewAuthentication("secret")
	require.NoError(t, err)

	t.Run("staff flag survives the token", func(t *testing.T) {
		token, err := auth.CreateToken(&models.UserFromAuth{ID: 42, Username: "admin", IsStaff: true}, time.Hour)
		require.NoError(t, err)

		user, err := auth.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)
		assert.True(t, user.IsStaff)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := NewAuthentication("other")
		require.NoError(t, err)
		token, err := other.CreateToken(&models.UserFromAuth{ID: 1}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Validate(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.CreateToken(&models.UserFromAuth{ID: 1}, -time.Minute)
		require.NoError(t, err)

		_, err = auth.Validate(token)
		assert.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		token, err := auth.CreateToken(&models.UserFromAuth{Username: "ghost"}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Validate(token)
		assert.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewAuthentication("")
		assert.Error(t, err)
	})
}
