package domain

import (
	"context"

	"github.com/cowetaconnect/backend/pkg/xcontext"
)

const failedLoginKeyPrefix = "auth:failed:"

// loginGuard throttles password logins per client origin. The counter is
// keyed by origin only, never by account, so it cannot be used to probe
// which emails exist. Losing the counters only weakens throttling.
type loginGuard struct{}

func (loginGuard) RecordFailure(ctx context.Context, originKey string) (int64, error) {
	window := xcontext.Configs(ctx).Auth.Lockout.Window
	return xcontext.RedisClient(ctx).IncrEx(ctx, failedLoginKeyPrefix+originKey, window)
}

func (loginGuard) GetCount(ctx context.Context, originKey string) (int64, error) {
	return xcontext.RedisClient(ctx).GetInt(ctx, failedLoginKeyPrefix+originKey)
}

func (loginGuard) Clear(ctx context.Context, originKey string) error {
	return xcontext.RedisClient(ctx).Del(ctx, failedLoginKeyPrefix+originKey)
}
