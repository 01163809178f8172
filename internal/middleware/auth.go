package middleware

import (
	"context"
	"strings"

	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/errorx"
	"github.com/cowetaconnect/backend/pkg/router"
	"github.com/cowetaconnect/backend/pkg/xcontext"
)

// Authenticate verifies the Bearer access token and stores the caller's id
// and role into the context.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		reqCtx, ok := ctx.(router.Context)
		if !ok {
			return nil, errorx.Unknown
		}

		authorization := reqCtx.Request().Header.Get("Authorization")
		auth, token, found := strings.Cut(authorization, " ")
		if !found || auth != "Bearer" || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		claims, err := xcontext.TokenEngine(ctx).VerifyAccessToken(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Failed to verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		ctx = xcontext.WithRequestUserID(ctx, claims.Subject)
		ctx = xcontext.WithRequestRole(ctx, claims.Role)
		return ctx, nil
	}
}

// OnlyAdmin rejects callers whose access token does not carry the Admin
// role. It must run after Authenticate.
func OnlyAdmin() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestRole(ctx) != entity.RoleAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
