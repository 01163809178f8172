package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "CowetaConnect"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, it serves the credential and session endpoints.`,
		},
		{
			Action:      s.startPruneTokens,
			Name:        "prune-tokens",
			Usage:       "Delete expired and revoked refresh tokens",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to reclaim storage from refresh tokens that can no longer be consumed. Safe to run at any time.`,
		},
	}

	s.app = app
}
