package authenticator

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/cowetaconnect/backend/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

type rsaTokenEngine struct {
	expiration time.Duration
	issuer     string
	audience   string

	// The key pair is fixed at process start. Tokens are verifiable with the
	// public key only.
	privateKey *rsa.PrivateKey
}

func NewTokenEngine(cfg config.AuthConfigs, key *rsa.PrivateKey) TokenEngine {
	return &rsaTokenEngine{
		expiration: cfg.AccessToken.Expiration,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		privateKey: key,
	}
}

func (e *rsaTokenEngine) GenerateAccessToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := AccessTokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    e.issuer,
			Audience:  jwt.ClaimStrings{e.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(e.privateKey)
}

func (e *rsaTokenEngine) VerifyAccessToken(token string) (*AccessTokenClaims, error) {
	var claims AccessTokenClaims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return &e.privateKey.PublicKey, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if !claims.VerifyIssuer(e.issuer, true) {
		return nil, fmt.Errorf("invalid issuer %s", claims.Issuer)
	}

	if !claims.VerifyAudience(e.audience, true) {
		return nil, fmt.Errorf("invalid audience")
	}

	return &claims, nil
}

// LoadSigningKey reads a PEM-encoded RSA private key from disk.
func LoadSigningKey(path string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
}
