package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may replace the request context;
// returning a nil context keeps the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// AfterFunc runs after the handler but before the response body is written,
// so it can still set headers and cookies.
type AfterFunc func(ctx Context) error

// CloserFunc runs last, after the response is written.
type CloserFunc func(ctx Context)

// Context is the read-only view offered to AfterFuncs and CloserFuncs.
type Context interface {
	context.Context

	Request() *http.Request
	Writer() http.ResponseWriter
	Response() any
	Error() error
}

type Router struct {
	Inner gin.IRouter

	base    context.Context
	befores []MiddlewareFunc
	afters  []AfterFunc
	closers []CloserFunc
}

// New creates a router on top of a base context carrying the process-wide
// dependencies (db, configs, logger, token engine, redis).
func New(base context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{Inner: gin.New(), base: base}
}

// Branch clones the middleware chains so routes registered on the branch do
// not affect the parent.
func (r *Router) Branch() *Router {
	branch := &Router{Inner: r.Inner, base: r.base}
	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(after AfterFunc) {
	r.afters = append(r.afters, after)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
