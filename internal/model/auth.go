package model

import (
	"context"
	"net/http"
	"time"

	"github.com/cowetaconnect/backend/pkg/xcontext"
)

// TokenPair is the result of every successful authentication flow. The raw
// refresh token never appears in a JSON body, it travels only in the cookie
// written by the middleware.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

func (p TokenPair) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.RefreshToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    p.RefreshToken,
			Path:     "/",
			Expires:  time.Now().Add(cfg.Expiration),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		},
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type RegisterResponse struct {
	TokenPair
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// OriginKey identifies the caller for brute-force throttling. The HTTP
	// layer fills it from the client address, never from the body.
	OriginKey string `json:"-"`
}

func (r *LoginRequest) SetOriginKey(key string) {
	r.OriginKey = key
}

type LoginResponse struct {
	TokenPair
}

type RefreshTokenRequest struct {
	// RefreshToken is read from the refresh cookie by the router.
	RefreshToken string `json:"-"`
}

func (r *RefreshTokenRequest) SetRefreshToken(raw string) {
	r.RefreshToken = raw
}

type RefreshTokenResponse struct {
	TokenPair
}

type LogoutRequest struct {
	RefreshToken string `json:"-"`
}

func (r *LogoutRequest) SetRefreshToken(raw string) {
	r.RefreshToken = raw
}

type LogoutResponse struct{}

// CookieInfo expires the refresh cookie on logout.
func (LogoutResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cfg := xcontext.Configs(ctx).Auth.RefreshToken
	return []http.Cookie{
		{
			Name:     cfg.Name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		},
	}
}

type OAuth2SignInRequest struct {
	Type         string `json:"type"`
	IDToken      string `json:"id_token"`
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	RedirectURI  string `json:"redirect_uri"`
}

type OAuth2SignInResponse struct {
	TokenPair
}

// RevokeSessions forces logout of every active session of a user.
type RevokeSessionsRequest struct {
	UserID string `json:"user_id"`
}

type RevokeSessionsResponse struct{}
