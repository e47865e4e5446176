package discord

import (
	"context"
	"encoding/json"
	"time"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/xredis"
)

// Mirror keeps a copy of the raw entities outside the process.
type Mirror interface {
	Store(ctx context.Context, key string, v any) error
	Forget(ctx context.Context, key string) error
	Channels(ctx context.Context) ([]APIChannel, error)
}

type RedisMirror struct {
	redis xredis.Client
	ttl   time.Duration
}

func NewRedisMirror(redis xredis.Client, ttl time.Duration) *RedisMirror {
	return &RedisMirror{redis: redis, ttl: ttl}
}

func (m *RedisMirror) Store(ctx context.Context, key string, v any) error {
	return m.redis.SetObj(ctx, key, v, m.ttl)
}

func (m *RedisMirror) Forget(ctx context.Context, key string) error {
	return m.redis.Del(ctx, key)
}

func (m *RedisMirror) Load(ctx context.Context, key string, v any) error {
	return m.redis.GetObj(ctx, key, v)
}

// Channels returns every mirrored channel. Expired or malformed entries are
// skipped.
func (m *RedisMirror) Channels(ctx context.Context) ([]APIChannel, error) {
	keys, err := m.redis.Keys(ctx, common.RedisKeyChannel("*"))
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := m.redis.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}

	var channels []APIChannel
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var ch APIChannel
		if err := json.Unmarshal([]byte(s), &ch); err != nil {
			continue
		}

		channels = append(channels, ch)
	}

	return channels, nil
}
