package authenticator

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/cowetaconnect/backend/config"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, expiration time.Duration) TokenEngine {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return NewTokenEngine(config.AuthConfigs{
		Issuer:      "issuer.test",
		Audience:    "audience.test",
		AccessToken: config.TokenConfigs{Expiration: expiration},
	}, key)
}

func Test_rsaTokenEngine_GenerateAndVerify(t *testing.T) {
	engine := newTestEngine(t, 15*time.Minute)

	token, err := engine.GenerateAccessToken("user1", "jane@example.com", "Member")
	require.NoError(t, err)

	claims, err := engine.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user1", claims.Subject)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "Member", claims.Role)
	require.Equal(t, "issuer.test", claims.Issuer)
	require.NotEmpty(t, claims.ID)

	// Every token gets a fresh jti.
	token2, err := engine.GenerateAccessToken("user1", "jane@example.com", "Member")
	require.NoError(t, err)
	claims2, err := engine.VerifyAccessToken(token2)
	require.NoError(t, err)
	require.NotEqual(t, claims.ID, claims2.ID)
}

func Test_rsaTokenEngine_Expired(t *testing.T) {
	engine := newTestEngine(t, -time.Minute)

	token, err := engine.GenerateAccessToken("user1", "jane@example.com", "Member")
	require.NoError(t, err)

	_, err = engine.VerifyAccessToken(token)
	require.Error(t, err)
}

func Test_rsaTokenEngine_WrongKey(t *testing.T) {
	engine := newTestEngine(t, 15*time.Minute)
	other := newTestEngine(t, 15*time.Minute)

	token, err := engine.GenerateAccessToken("user1", "jane@example.com", "Member")
	require.NoError(t, err)

	// A token signed with another key never verifies.
	_, err = other.VerifyAccessToken(token)
	require.Error(t, err)

	// Neither does a tampered one.
	_, err = engine.VerifyAccessToken(token + "x")
	require.Error(t, err)
}
