package main

import (
	"fmt"
	"net/http"

	"github.com/cowetaconnect/backend/internal/middleware"
	"github.com/cowetaconnect/backend/pkg/router"
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithConfigs(s.ctx, s.loadConfig())
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadTokenEngine()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.loadRouter().Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port %s", cfg.ApiServer.Port)
	if err := httpServer.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() *router.Router {
	r := router.New(s.ctx)
	r.AddCloser(middleware.Logger())

	// Auth API
	authRouter := r.Branch()
	authRouter.After(middleware.HandleSetRefreshCookie())
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
		router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
		router.POST(authRouter, "/auth/logout", s.authDomain.Logout)
		router.POST(authRouter, "/oauth2/signin", s.authDomain.OAuth2SignIn)
	}

	// These following APIs need authentication with an admin access token.
	adminRouter := r.Branch()
	adminRouter.Before(middleware.Authenticate())
	adminRouter.Before(middleware.OnlyAdmin())
	{
		router.POST(adminRouter, "/admin/revokeSessions", s.authDomain.RevokeSessions)
	}

	return r
}
