package main

import (
	"github.com/cowetaconnect/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startPruneTokens(*cli.Context) error {
	s.ctx = xcontext.WithConfigs(s.ctx, s.loadConfig())
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()

	n, err := s.refreshTokenRepo.DeleteExpired(s.ctx)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Pruned %d refresh tokens", n)
	return nil
}
