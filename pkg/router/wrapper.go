package router

import (
	"context"
	"net/http"

	"github.com/cowetaconnect/backend/pkg/errorx"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

// RefreshCookieRequest is implemented by request models that carry the raw
// refresh token. The router fills it from the refresh cookie; the value never
// comes from the body.
type RefreshCookieRequest interface {
	SetRefreshToken(raw string)
}

// OriginRequest is implemented by request models throttled per client
// origin. The router fills it from the client address.
type OriginRequest interface {
	SetOriginKey(key string)
}

type requestContext struct {
	context.Context

	r    *http.Request
	w    http.ResponseWriter
	resp any
	err  error
}

func (ctx *requestContext) Request() *http.Request      { return ctx.r }
func (ctx *requestContext) Writer() http.ResponseWriter { return ctx.w }
func (ctx *requestContext) Response() any               { return ctx.resp }
func (ctx *requestContext) Error() error                { return ctx.err }

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return func(gctx *gin.Context) {
		reqCtx := &requestContext{Context: router.base, r: gctx.Request, w: gctx.Writer}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		default:
			if gctx.Request.ContentLength > 0 {
				err = gctx.ShouldBindJSON(&req)
			}
		}

		if err != nil {
			reqCtx.err = errorx.New(errorx.BadRequest, "Cannot bind the request")
			finish(reqCtx, afters, closers)
			return
		}

		bindTransport(reqCtx, gctx, &req)

		ctx := context.Context(reqCtx)
		for _, middleware := range befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				reqCtx.err = err
				break
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		if reqCtx.err == nil {
			resp, err := handler(ctx, &req)
			if err != nil {
				reqCtx.err = err
			} else {
				reqCtx.resp = resp
			}
		}

		finish(reqCtx, afters, closers)
	}
}

func bindTransport(ctx *requestContext, gctx *gin.Context, req any) {
	if cookieReq, ok := req.(RefreshCookieRequest); ok {
		name := xcontext.Configs(ctx).Auth.RefreshToken.Name
		if cookie, err := gctx.Cookie(name); err == nil {
			cookieReq.SetRefreshToken(cookie)
		}
	}

	if originReq, ok := req.(OriginRequest); ok {
		originReq.SetOriginKey(gctx.ClientIP())
	}
}

func finish(ctx *requestContext, afters []AfterFunc, closers []CloserFunc) {
	for _, after := range afters {
		if err := after(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot run the after middleware: %v", err)
			ctx.err = errorx.Unknown
			break
		}
	}

	writeResponse(ctx)

	for _, closer := range closers {
		closer(ctx)
	}
}
