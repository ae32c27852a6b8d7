package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/orderpad/backend/internal/domain/access"
	"github.com/orderpad/backend/internal/infrastructure/config"
)

// ErrNoPassphrase is returned when neither a passphrase nor a hash is configured
var ErrNoPassphrase = errors.New("gate passphrase is not configured")

// DefaultHashCost is the bcrypt cost used by HashPassphrase
const DefaultHashCost = 12

// StaticPassphraseAuthorizer compares input against a plain shared passphrase
type StaticPassphraseAuthorizer struct {
	passphrase []byte
}

// NewStaticPassphraseAuthorizer creates an authorizer for passphrase
func NewStaticPassphraseAuthorizer(passphrase string) *StaticPassphraseAuthorizer {
	return &StaticPassphraseAuthorizer{passphrase: []byte(passphrase)}
}

// Authorize reports whether input equals the passphrase. An empty
// passphrase never authorizes.
func (a *StaticPassphraseAuthorizer) Authorize(input string) bool {
	if len(a.passphrase) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(a.passphrase, []byte(input)) == 1
}

// BcryptAuthorizer compares input against a bcrypt hash
type BcryptAuthorizer struct {
	hash []byte
}

// NewBcryptAuthorizer creates an authorizer for a bcrypt hash
func NewBcryptAuthorizer(hash string) (*BcryptAuthorizer, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return &BcryptAuthorizer{hash: []byte(hash)}, nil
}

// Authorize reports whether input matches the hash
func (a *BcryptAuthorizer) Authorize(input string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(input)) == nil
}

// HashPassphrase produces a bcrypt hash suitable for gate.passphrase_hash
func HashPassphrase(passphrase string, cost int) (string, error) {
	if passphrase == "" {
		return "", ErrNoPassphrase
	}
	if cost == 0 {
		cost = DefaultHashCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hash), nil
}

// NewAuthorizer builds the gate authorizer from configuration. The hash
// takes precedence over the plain passphrase.
func NewAuthorizer(cfg config.GateConfig) (access.Authorizer, error) {
	switch {
	case cfg.PassphraseHash != "":
		return NewBcryptAuthorizer(cfg.PassphraseHash)
	case cfg.Passphrase != "":
		return NewStaticPassphraseAuthorizer(cfg.Passphrase), nil
	default:
		return nil, ErrNoPassphrase
	}
}

var (
	_ access.Authorizer = (*StaticPassphraseAuthorizer)(nil)
	_ access.Authorizer = (*BcryptAuthorizer)(nil)
)
