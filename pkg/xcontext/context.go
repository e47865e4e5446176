package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/questx-lab/discordx/config"
	"github.com/questx-lab/discordx/pkg/logger"
)

type (
	configsKey    struct{}
	loggerKey     struct{}
	httpClientKey struct{}
)

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// WithConfigs returns a copy of ctx carrying the configurations.
func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger stored in ctx, or a logger printing errors only.
func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.ERROR)
	}

	return l
}

func WithHTTPClient(ctx context.Context, c *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, c)
}

func HTTPClient(ctx context.Context) *http.Client {
	c, ok := ctx.Value(httpClientKey{}).(*http.Client)
	if !ok {
		return defaultHTTPClient
	}

	return c
}
