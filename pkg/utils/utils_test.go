package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func TestFormatValidationError(t *testing.T) {
	err := Validate(signup{Email: "a@b.co", Password: "short", ConfirmPassword: "short"})
	require.Error(t, err)
	assert.Equal(t, "password must be at least 8 characters", FormatValidationError(err))

	err = Validate(signup{Email: "a@b.co", Password: "longenough", ConfirmPassword: "different"})
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", FormatValidationError(err))

	err = Validate(signup{Email: "nope", Password: "longenough", ConfirmPassword: "longenough"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email address", FormatValidationError(err))

	assert.NoError(t, Validate(signup{Email: "a@b.co", Password: "longenough", ConfirmPassword: "longenough"}))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, expiresAt, err := GenerateSessionToken("sid-1", 42, "doctor")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.ID)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "doctor", claims.Role)

	InitJWT("other-secret", time.Hour)
	_, err = ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	BcryptCost = 4
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, ComparePassword(hash, "correct horse"))
	assert.False(t, ComparePassword(hash, "wrong horse"))
}
