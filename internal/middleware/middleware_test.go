package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cowetaconnect/backend/internal/domain"
	"github.com/cowetaconnect/backend/internal/repository"
	"github.com/cowetaconnect/backend/pkg/authenticator"
	"github.com/cowetaconnect/backend/pkg/router"
	"github.com/cowetaconnect/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code       int64  `json:"code"`
	Error      string `json:"error"`
	RetryAfter int64  `json:"retry_after_seconds"`
	Data       struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

func newTestHandler(t *testing.T) http.Handler {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	authDomain := domain.NewAuthDomain(
		repository.NewUserRepository(),
		repository.NewRefreshTokenRepository(),
		[]authenticator.IOAuth2Service{},
	)

	r := router.New(ctx)
	r.AddCloser(Logger())

	authRouter := r.Branch()
	authRouter.After(HandleSetRefreshCookie())
	{
		router.POST(authRouter, "/auth/register", authDomain.Register)
		router.POST(authRouter, "/auth/login", authDomain.Login)
		router.POST(authRouter, "/auth/refresh", authDomain.Refresh)
		router.POST(authRouter, "/auth/logout", authDomain.Logout)
	}

	adminRouter := r.Branch()
	adminRouter.Before(Authenticate())
	adminRouter.Before(OnlyAdmin())
	{
		router.POST(adminRouter, "/admin/revokeSessions", authDomain.RevokeSessions)
	}

	return r.Handler()
}

func doJSON(handler http.Handler, path, body string, mutate ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp envelope
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			return cookie
		}
	}

	t.Fatal("no refresh_token cookie in response")
	return nil
}

func Test_refreshCookieRoundTrip(t *testing.T) {
	handler := newTestHandler(t)

	login := fmt.Sprintf(`{"email":%q,"password":%q}`, testutil.User1.Email, testutil.Password1Plain)
	w, resp := doJSON(handler, "/auth/login", login)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(0), resp.Code)
	require.NotEmpty(t, resp.Data.AccessToken)

	// The raw refresh token travels only in the cookie, never in the body.
	require.NotContains(t, w.Body.String(), "refresh_token")
	cookie := refreshCookie(t, w)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, "/", cookie.Path)

	// Refresh reads the cookie and rotates it.
	w2, resp2 := doJSON(handler, "/auth/refresh", "", func(req *http.Request) {
		req.AddCookie(cookie)
	})
	require.Equal(t, http.StatusOK, w2.Code)
	require.NotEmpty(t, resp2.Data.AccessToken)

	rotated := refreshCookie(t, w2)
	require.NotEqual(t, cookie.Value, rotated.Value)

	// Replaying the consumed cookie is denied.
	w3, resp3 := doJSON(handler, "/auth/refresh", "", func(req *http.Request) {
		req.AddCookie(cookie)
	})
	require.Equal(t, http.StatusForbidden, w3.Code)
	require.Equal(t, "Refresh token is invalid or expired", resp3.Error)

	// Logout clears the cookie.
	w4, _ := doJSON(handler, "/auth/logout", "", func(req *http.Request) {
		req.AddCookie(rotated)
	})
	require.Equal(t, http.StatusOK, w4.Code)
	cleared := refreshCookie(t, w4)
	require.Empty(t, cleared.Value)
	require.Less(t, cleared.MaxAge, 0)
}

func Test_Authenticate(t *testing.T) {
	handler := newTestHandler(t)
	body := fmt.Sprintf(`{"user_id":%q}`, testutil.User1.ID)

	// No token at all.
	w, resp := doJSON(handler, "/admin/revokeSessions", body)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "You need to authenticate before", resp.Error)

	// Garbage token.
	w, _ = doJSON(handler, "/admin/revokeSessions", body, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer garbage")
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// A member is authenticated but not authorized.
	login := fmt.Sprintf(`{"email":%q,"password":%q}`, testutil.User1.Email, testutil.Password1Plain)
	_, memberResp := doJSON(handler, "/auth/login", login)
	w, resp = doJSON(handler, "/admin/revokeSessions", body, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+memberResp.Data.AccessToken)
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Permission denied", resp.Error)

	// An admin passes both checks.
	adminLogin := fmt.Sprintf(`{"email":%q,"password":%q}`, testutil.User3.Email, testutil.Password1Plain)
	_, adminResp := doJSON(handler, "/auth/login", adminLogin)
	w, _ = doJSON(handler, "/admin/revokeSessions", body, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+adminResp.Data.AccessToken)
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func Test_lockoutResponse(t *testing.T) {
	handler := newTestHandler(t)
	badLogin := fmt.Sprintf(`{"email":%q,"password":"WrongPassword1"}`, testutil.User1.Email)

	for i := 0; i < 5; i++ {
		w, _ := doJSON(handler, "/auth/login", badLogin)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w, resp := doJSON(handler, "/auth/login", badLogin)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "900", w.Header().Get("Retry-After"))
	require.Equal(t, int64(900), resp.RetryAfter)
}
