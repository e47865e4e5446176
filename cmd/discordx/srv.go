package main

import (
	"context"
	"errors"

	"github.com/questx-lab/discordx/config"
	"github.com/questx-lab/discordx/pkg/discord"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/logger"
	"github.com/questx-lab/discordx/pkg/xcontext"
	"github.com/questx-lab/discordx/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger

	redisClient xredis.Client
	client      *discord.Client
}

func (s *srv) loadConfig(ct *cli.Context) error {
	cfg, err := config.Load(ct.String(configFlag.Name))
	if err != nil {
		return err
	}

	if cfg.Discord.BotToken == "" {
		return errors.New("a configuration file with a bot token is required")
	}

	s.configs = cfg
	return nil
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.New(context.Background(), s.configs)
	s.logger = xcontext.Logger(s.ctx)
}

func (s *srv) loadRedisClient() error {
	if !s.configs.Redis.Enable {
		return nil
	}

	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	return err
}

func (s *srv) loadClient() error {
	opts := []discord.ClientOption{discord.WithLogger(s.logger)}
	if s.redisClient != nil {
		opts = append(opts, discord.WithMirror(discord.NewRedisMirror(s.redisClient, s.configs.Redis.TTL.Duration)))
	}

	var err error
	s.client, err = discord.NewClient(s.ctx, rest.New(s.configs.Discord), opts...)
	if err != nil {
		return err
	}

	_, err = s.client.Login(s.ctx)
	return err
}

// boot runs the loaders shared by every command.
func (s *srv) boot(ct *cli.Context) error {
	if err := s.loadConfig(ct); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadRedisClient(); err != nil {
		return err
	}

	return s.loadClient()
}
