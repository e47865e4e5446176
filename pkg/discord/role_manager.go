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

type GuildRoleManager struct {
	manager

	guild *Guild
	cache *collection.Collection[string, *Role]
}

func newGuildRoleManager(g *Guild) *GuildRoleManager {
	m := &GuildRoleManager{guild: g, cache: collection.New[string, *Role]()}
	m.init(fmt.Sprintf("guild %s roles", g.ID), g.client.logger)
	return m
}

func (m *GuildRoleManager) Cache() *collection.Collection[string, *Role] {
	return m.cache
}

// Everyone is the role every member of the guild has. It shares the id of the
// guild.
func (m *GuildRoleManager) Everyone() (*Role, bool) {
	return m.cache.Get(m.guild.ID)
}

// Sorted returns the cached roles from the highest to the lowest position.
func (m *GuildRoleManager) Sorted() []*Role {
	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	return m.cache.Sorted(func(a, b *Role) bool {
		return a.Position > b.Position
	})
}

// Fetch fetches a single role when id looks like a valid id, or every role of
// the guild otherwise.
func (m *GuildRoleManager) Fetch(ctx context.Context, id string) (*collection.Collection[string, *Role], error) {
	if !idutil.IsValidID(id) {
		if err := m.populate(ctx, m.fetchAll); err != nil {
			return nil, err
		}

		return m.cache, nil
	}

	result := collection.New[string, *Role]()
	err := m.locked(func() error {
		raw, err := rest.Call[APIRole](ctx, m.guild.client.rest, rest.Request{
			Method:        http.MethodGet,
			Endpoint:      rest.GuildRole(m.guild.ID, id),
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

func (m *GuildRoleManager) fetchAll(ctx context.Context) error {
	raws, err := rest.Call[[]APIRole](ctx, m.guild.client.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.GuildRoles(m.guild.ID),
		Authenticated: true,
	})
	if err != nil {
		return err
	}

	for _, raw := range raws {
		m.add(ctx, raw)
	}

	return nil
}

func (m *GuildRoleManager) add(ctx context.Context, raw APIRole) *Role {
	m.guild.client.mu.Lock()
	role, ok := m.cache.Get(raw.ID)
	if ok {
		role.patch(raw)
	} else {
		role = newRole(m.guild, raw)
		m.cache.Set(raw.ID, role)
	}
	m.guild.client.mu.Unlock()

	m.guild.client.store(ctx, common.RedisKeyRole(m.guild.ID, raw.ID), raw)
	return role
}
