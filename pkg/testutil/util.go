package testutil

import (
	"context"

	"github.com/questx-lab/discordx/config"
	"github.com/questx-lab/discordx/pkg/logger"
	"github.com/questx-lab/discordx/pkg/xcontext"
)

func MockContext() context.Context {
	cfg := config.Default()
	cfg.Discord.BotToken = "bot-token"
	cfg.Discord.BotID = "100000000000000001"
	cfg.Discord.NonceNode = 1

	ctx := xcontext.WithConfigs(context.Background(), cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	return ctx
}
