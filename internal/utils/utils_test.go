package utils

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestAdminTokenRoundTrip(t *testing.T) {
    tok, err := NewAdminToken("s3cret", "admin", time.Minute)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)
    require.True(t, tok.Expires.After(time.Now()))

    sub, role, err := ParseToken("s3cret", tok.Token)
    require.NoError(t, err)
    require.Equal(t, "admin", sub)
    require.Equal(t, RoleAdmin, role)
}

func TestParseTokenRejects(t *testing.T) {
    tok, err := NewAdminToken("s3cret", "admin", time.Minute)
    require.NoError(t, err)

    _, _, err = ParseToken("other", tok.Token)
    require.Error(t, err)

    expired, err := NewAdminToken("s3cret", "admin", -time.Minute)
    require.NoError(t, err)
    _, _, err = ParseToken("s3cret", expired.Token)
    require.Error(t, err)

    _, err = NewAdminToken("", "admin", time.Minute)
    require.Error(t, err)
}

func TestPassword(t *testing.T) {
    hash, err := HashPassword("hunter2", bcrypt.MinCost)
    require.NoError(t, err)
    require.True(t, VerifyPassword(hash, "hunter2"))
    require.False(t, VerifyPassword(hash, "hunter3"))
    require.False(t, VerifyPassword("", "hunter2"))

    _, err = HashPassword("", bcrypt.MinCost)
    require.ErrorIs(t, err, ErrEmptyPassword)
}
