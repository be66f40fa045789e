package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenPairRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	pair, err := GenerateTokenPair(userID, "resident", "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(JWTAccessTokenTTL.Seconds()), pair.ExpiresIn)

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := ValidateToken(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "resident", claims.Role)
		assert.Equal(t, AppName, claims.Issuer)
		assert.Equal(t, userID.Hex(), claims.Subject)
	}

	_, err = ValidateToken(pair.AccessToken, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingUser(t *testing.T) {
	token, err := signToken(primitive.NilObjectID, "resident", "", "secret", JWTAccessTokenTTL)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.EqualError(t, err, "token has no user id")
}
