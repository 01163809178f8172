package middleware

import (
	"context"
	"net/http"

	"github.com/cowetaconnect/backend/pkg/router"
)

type CookieResponse interface {
	CookieInfo(ctx context.Context) []http.Cookie
}

// HandleSetRefreshCookie writes the cookies declared by the response before
// the body goes out. This is how the raw refresh token reaches the browser:
// HTTP-only, secure, strict same-site, root path.
func HandleSetRefreshCookie() router.AfterFunc {
	return func(ctx router.Context) error {
		tokenResp, ok := ctx.Response().(CookieResponse)
		if ok {
			for _, cookie := range tokenResp.CookieInfo(ctx) {
				http.SetCookie(ctx.Writer(), &cookie)
			}
		}

		return nil
	}
}
