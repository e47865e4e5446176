package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/collection"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/idutil"
)

// GuildChannelManager caches the channels of a guild. Every channel it
// discovers is also written to Client.Channels as the same instance.
type GuildChannelManager struct {
	manager

	guild *Guild
	cache *collection.Collection[string, Channel]
}

func newGuildChannelManager(g *Guild) *GuildChannelManager {
	m := &GuildChannelManager{guild: g, cache: collection.New[string, Channel]()}
	m.init(fmt.Sprintf("guild %s channels", g.ID), g.client.logger)
	return m
}

func (m *GuildChannelManager) Cache() *collection.Collection[string, Channel] {
	return m.cache
}

// Fetch fetches a single channel when id looks like a valid id, or every
// channel of the guild otherwise.
func (m *GuildChannelManager) Fetch(ctx context.Context, id string) (*collection.Collection[string, Channel], error) {
	if !idutil.IsValidID(id) {
		if err := m.populate(ctx, m.fetchAll); err != nil {
			return nil, err
		}

		return m.cache, nil
	}

	result := collection.New[string, Channel]()
	err := m.locked(func() error {
		raw, err := rest.Call[APIChannel](ctx, m.guild.client.rest, rest.Request{
			Method:        http.MethodGet,
			Endpoint:      rest.Channel(id),
			Authenticated: true,
		})
		if err != nil {
			return err
		}

		result.Set(raw.ID, m.add(ctx, raw))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (m *GuildChannelManager) fetchAll(ctx context.Context) error {
	if err := m.restore(ctx); err != nil {
		m.logger.Warnf("Cannot restore channels of guild %s: %v", m.guild.ID, err)
	}

	raws, err := rest.Call[[]APIChannel](ctx, m.guild.client.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.GuildChannels(m.guild.ID),
		Authenticated: true,
	})
	if err != nil {
		return err
	}

	listed := make(map[string]bool, len(raws))
	for _, raw := range raws {
		m.add(ctx, raw)
		listed[raw.ID] = true
	}

	// Channels restored from the mirror or cached earlier may be gone.
	for _, id := range m.cache.Keys() {
		if !listed[id] {
			m.remove(ctx, id)
		}
	}

	return nil
}

// restore fills an empty cache with the channels of the mirror, so that reads
// have something to return while the service answers.
func (m *GuildChannelManager) restore(ctx context.Context) error {
	mirror := m.guild.client.mirror
	if mirror == nil || m.cache.Len() > 0 {
		return nil
	}

	raws, err := mirror.Channels(ctx)
	if err != nil {
		return err
	}

	for _, raw := range raws {
		if raw.GuildID != m.guild.ID {
			continue
		}

		ch := m.guild.client.upsertChannel(raw)
		m.cache.Set(raw.ID, ch)
		m.guild.client.Channels.Set(raw.ID, ch)
	}

	return nil
}

// add writes raw to the guild cache, the client cache and the mirror.
func (m *GuildChannelManager) add(ctx context.Context, raw APIChannel) Channel {
	if raw.GuildID == "" {
		raw.GuildID = m.guild.ID
	}

	ch := m.guild.client.upsertChannel(raw)
	m.cache.Set(raw.ID, ch)
	m.guild.client.Channels.Set(raw.ID, ch)
	m.guild.client.store(ctx, common.RedisKeyChannel(raw.ID), raw)
	return ch
}

func (m *GuildChannelManager) remove(ctx context.Context, id string) {
	m.cache.Delete(id)
	m.guild.client.Channels.Delete(id)
	m.guild.client.forget(ctx, common.RedisKeyChannel(id))
}
