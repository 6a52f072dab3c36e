package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("member-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	memberID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "member-123", memberID)
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken("member-123")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err, "a tampered signature must be rejected")
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
