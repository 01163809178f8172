package authenticator

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/cowetaconnect/backend/config"
	"golang.org/x/oauth2"
)

type OAuth2Service struct {
	*oidc.Provider
	oauth2.Config

	name string
}

func NewOAuth2Service(ctx context.Context, cfg config.OAuth2Config) (*OAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &OAuth2Service{
		Provider: provider,
		Config: oauth2.Config{
			ClientID: cfg.ClientID,
			Endpoint: provider.Endpoint(),
			Scopes:   []string{oidc.ScopeOpenID, "email", "profile"},
		},
		name: cfg.Name,
	}, nil
}

func (s *OAuth2Service) Service() string {
	return s.name
}

func (s *OAuth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	idToken, err := s.Verifier(&oidc.Config{ClientID: s.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	return s.extractUser(idToken)
}

func (s *OAuth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, codeVerifier, redirectURI string,
) (OAuth2User, error) {
	token, err := s.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
		oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}

func (s *OAuth2Service) extractUser(idToken *oidc.IDToken) (OAuth2User, error) {
	var profile struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	return OAuth2User{
		Subject: idToken.Subject,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}
