package testutil

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"time"

	"github.com/cowetaconnect/backend/config"
	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/pkg/authenticator"
	"github.com/cowetaconnect/backend/pkg/logger"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	signingKeyOnce sync.Once
	signingKey     *rsa.PrivateKey
)

func testSigningKey() *rsa.PrivateKey {
	signingKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}

		signingKey = key
	})

	return signingKey
}

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			Issuer:   "cowetaconnect.test",
			Audience: "cowetaconnect.test",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 15 * time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: 7 * 24 * time.Hour,
			},
			Lockout: config.LockoutConfigs{
				MaxAttempts: 5,
				Window:      15 * time.Minute,
			},
			Google: config.OAuth2Config{
				Name:     "google",
				Issuer:   "https://accounts.google.com",
				ClientID: "test-client-id",
			},
		},
	}
}

func NewMockContext() context.Context {
	cfg := MockConfigs()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// An in-memory sqlite database exists per connection. Cap the pool at one
	// so every goroutine in a test sees the same database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth, testSigningKey()))
	ctx = xcontext.WithRedisClient(ctx, NewInMemoryRedisClient())

	return ctx
}
