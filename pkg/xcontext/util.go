package xcontext

import (
	"context"

	"github.com/questx-lab/discordx/config"
	"github.com/questx-lab/discordx/pkg/logger"
)

// New builds the root context of a process from its configurations.
func New(parent context.Context, cfg config.Configs) context.Context {
	ctx := WithConfigs(parent, cfg)
	return WithLogger(ctx, logger.NewLogger(cfg.LogLevel))
}
