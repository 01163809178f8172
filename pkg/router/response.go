package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cowetaconnect/backend/pkg/errorx"
	"github.com/cowetaconnect/backend/pkg/xcontext"
)

type response struct {
	Code       int64  `json:"code"`
	Error      string `json:"error,omitempty"`
	RetryAfter int64  `json:"retry_after_seconds,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func writeResponse(ctx *requestContext) {
	if ctx.err == nil {
		writeJson(ctx, http.StatusOK, response{Code: 0, Data: ctx.resp})
		return
	}

	errx := errorx.Error{}
	if !errors.As(ctx.err, &errx) {
		errx = errorx.Unknown
	}

	if errx.RetryAfter > 0 {
		ctx.w.Header().Set("Retry-After", strconv.FormatInt(errx.RetryAfter, 10))
	}

	writeJson(ctx, httpStatus(errx.Code), response{
		Code:       int64(errx.Code),
		Error:      errx.Message,
		RetryAfter: errx.RetryAfter,
	})
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(ctx *requestContext, status int, resp response) {
	b, err := json.Marshal(resp)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the response: %v", err)
		ctx.w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ctx.w.Header().Set("Content-Type", "application/json")
	ctx.w.WriteHeader(status)
	if _, err := ctx.w.Write(b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
