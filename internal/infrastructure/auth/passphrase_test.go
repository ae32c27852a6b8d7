package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderpad/backend/internal/infrastructure/config"
)

func TestStaticPassphraseAuthorizer(t *testing.T) {
	a := NewStaticPassphraseAuthorizer("back-office")

	assert.True(t, a.Authorize("back-office"))
	assert.False(t, a.Authorize("Back-Office"))
	assert.False(t, a.Authorize("back-office "))
	assert.False(t, a.Authorize(""))

	t.Run("empty passphrase rejects everything", func(t *testing.T) {
		assert.False(t, NewStaticPassphraseAuthorizer("").Authorize(""))
	})
}

func TestBcryptAuthorizer(t *testing.T) {
	hash, err := HashPassphrase("back-office", bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewBcryptAuthorizer(hash)
	require.NoError(t, err)
	assert.True(t, a.Authorize("back-office"))
	assert.False(t, a.Authorize("nope"))

	t.Run("rejects malformed hash", func(t *testing.T) {
		_, err := NewBcryptAuthorizer("not-a-hash")
		assert.Error(t, err)
	})

	t.Run("empty passphrase cannot be hashed", func(t *testing.T) {
		_, err := HashPassphrase("", bcrypt.MinCost)
		assert.ErrorIs(t, err, ErrNoPassphrase)
	})
}

func TestNewAuthorizer(t *testing.T) {
	hash, err := HashPassphrase("hashed", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("hash wins", func(t *testing.T) {
		a, err := NewAuthorizer(config.GateConfig{Passphrase: "plain", PassphraseHash: hash})
		require.NoError(t, err)
		assert.True(t, a.Authorize("hashed"))
		assert.False(t, a.Authorize("plain"))
	})

	t.Run("plain passphrase", func(t *testing.T) {
		a, err := NewAuthorizer(config.GateConfig{Passphrase: "plain"})
		require.NoError(t, err)
		assert.IsType(t, &StaticPassphraseAuthorizer{}, a)
		assert.True(t, a.Authorize("plain"))
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := NewAuthorizer(config.GateConfig{})
		assert.ErrorIs(t, err, ErrNoPassphrase)
	})
}
