package middleware

import (
	"errors"
	"fmt"

	"github.com/cowetaconnect/backend/pkg/errorx"
	"github.com/cowetaconnect/backend/pkg/router"
	"github.com/cowetaconnect/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx router.Context) {
		info := fmt.Sprintf("%s | %s", ctx.Request().Method, ctx.Request().URL.Path)
		if err := ctx.Error(); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
