package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path of the TOML configuration file",
	EnvVars: []string{"DISCORDX_CONFIG"},
}

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "discordx"
	s.app.Usage = "Inspect and serve a chat application"
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Commands = []*cli.Command{
		{
			Action:      s.listChannels,
			Name:        "channels",
			Usage:       "List the channels of a guild",
			ArgsUsage:   "<guildID>",
			Category:    "Inspect",
			Description: `Fetches the guild and prints its channels grouped by category.`,
		},
		{
			Action:    s.showMember,
			Name:      "member",
			Usage:     "Show a member of a guild",
			ArgsUsage: "<guildID> <userID>",
			Category:  "Inspect",
			Description: `Fetches the member and prints its roles, permissions and whether the ` +
				`application can kick or ban it.`,
		},
		{
			Action:    s.startServe,
			Name:      "serve",
			Usage:     "Serve the interaction webhook",
			ArgsUsage: "",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "Address of the interaction webhook",
				},
			},
			Category: "Server",
			Description: `Answers interaction webhooks and exposes prometheus metrics on the ` +
				`configured metrics address.`,
		},
	}
}
