package testutil

import (
	"context"
	"errors"

	"github.com/cowetaconnect/backend/pkg/authenticator"
)

type MockOAuth2Service struct {
	ServiceFunc                 func() string
	VerifyIDTokenFunc           func(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error)
	VerifyAuthorizationCodeFunc func(ctx context.Context, code, codeVerifier, redirectURI string) (authenticator.OAuth2User, error)
}

func (m *MockOAuth2Service) Service() string {
	if m.ServiceFunc != nil {
		return m.ServiceFunc()
	}

	return "google"
}

func (m *MockOAuth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (authenticator.OAuth2User, error) {
	if m.VerifyIDTokenFunc != nil {
		return m.VerifyIDTokenFunc(ctx, rawIDToken)
	}

	return authenticator.OAuth2User{}, errors.New("not implemented")
}

func (m *MockOAuth2Service) VerifyAuthorizationCode(ctx context.Context, code, codeVerifier, redirectURI string) (authenticator.OAuth2User, error) {
	if m.VerifyAuthorizationCodeFunc != nil {
		return m.VerifyAuthorizationCodeFunc(ctx, code, codeVerifier, redirectURI)
	}

	return authenticator.OAuth2User{}, errors.New("not implemented")
}
