package password_test

import (
	"strings"
	"testing"

	"tourism/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "single character", password: "a"},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 72)},
		{name: "unicode", password: "pässwörd-ñ-日本"},
		{name: "empty", password: "", wantErr: password.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, password.Cost, cost)
		})
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", 73))

	assert.Error(t, err)
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Verify("same-password", first))
	assert.NoError(t, password.Verify("same-password", second))
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
		wantAny  bool
	}{
		{name: "match", password: "correct-horse", hash: hash},
		{name: "mismatch", password: "battery-staple", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", password: "Correct-Horse", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "correct-horse", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "correct-horse", hash: "not-a-bcrypt-hash", wantAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	current, err := password.Hash("secret123")
	require.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(legacy)))
	assert.False(t, password.NeedsRehash(current))
	assert.False(t, password.NeedsRehash("not-a-bcrypt-hash"))
}
