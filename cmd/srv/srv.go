package main

import (
	"context"

	"github.com/cowetaconnect/backend/internal/domain"
	"github.com/cowetaconnect/backend/internal/entity"
	"github.com/cowetaconnect/backend/internal/repository"
	"github.com/cowetaconnect/backend/pkg/authenticator"
	"github.com/cowetaconnect/backend/pkg/logger"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"github.com/cowetaconnect/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository

	authDomain domain.AuthDomain
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(xcontext.DB(s.ctx)); err != nil {
		panic(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadRedisClient() {
	client, err := xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithRedisClient(s.ctx, client)
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx).Auth
	key, err := authenticator.LoadSigningKey(cfg.SigningKeyFile)
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg, key))
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx).Auth

	google, err := authenticator.NewOAuth2Service(s.ctx, cfg.Google)
	if err != nil {
		panic(err)
	}

	s.authDomain = domain.NewAuthDomain(
		s.userRepo,
		s.refreshTokenRepo,
		[]authenticator.IOAuth2Service{google},
	)
}
