package authenticator

import (
	"context"
)

// OAuth2User is the identity asserted by a third-party provider after its
// token has been verified.
type OAuth2User struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, codeVerifier, redirectURI string) (OAuth2User, error)
}

type TokenEngine interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	VerifyAccessToken(token string) (*AccessTokenClaims, error)
}
