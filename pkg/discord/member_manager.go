package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/api"
	"github.com/questx-lab/discordx/pkg/collection"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/idutil"
)

// memberPageSize is the largest page of members the service returns.
const memberPageSize = 1000

// GuildMemberManager caches the members of a guild. Its population only
// fetches the authenticated member.
type GuildMemberManager struct {
	manager

	guild *Guild
	cache *collection.Collection[string, *Member]
}

func newGuildMemberManager(g *Guild) *GuildMemberManager {
	m := &GuildMemberManager{guild: g, cache: collection.New[string, *Member]()}
	m.init(fmt.Sprintf("guild %s members", g.ID), g.client.logger)
	return m
}

func (m *GuildMemberManager) Cache() *collection.Collection[string, *Member] {
	return m.cache
}

// Me returns the authenticated member when it is cached.
func (m *GuildMemberManager) Me() (*Member, bool) {
	return m.cache.Get(m.guild.client.selfID())
}

// Fetch fetches a single member when id looks like a valid id, or the members
// of the guild otherwise.
func (m *GuildMemberManager) Fetch(ctx context.Context, id string) (*collection.Collection[string, *Member], error) {
	if !idutil.IsValidID(id) {
		if err := m.populate(ctx, m.fetchAll); err != nil {
			return nil, err
		}

		return m.cache, nil
	}

	result := collection.New[string, *Member]()
	err := m.locked(func() error {
		member, err := m.fetchOne(ctx, id)
		if err != nil {
			return err
		}

		result.Set(id, member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (m *GuildMemberManager) fetchMe(ctx context.Context) error {
	_, err := m.fetchOne(ctx, m.guild.client.selfID())
	return err
}

func (m *GuildMemberManager) fetchOne(ctx context.Context, id string) (*Member, error) {
	raw, err := rest.Call[APIMember](ctx, m.guild.client.rest, rest.Request{
		Method:        http.MethodGet,
		Endpoint:      rest.GuildMember(m.guild.ID, id),
		Authenticated: true,
	})
	if err != nil {
		return nil, err
	}

	return m.add(ctx, raw), nil
}

// fetchAll walks the member list page by page.
func (m *GuildMemberManager) fetchAll(ctx context.Context) error {
	after := "0"
	for {
		raws, err := rest.Call[[]APIMember](ctx, m.guild.client.rest, rest.Request{
			Method:        http.MethodGet,
			Endpoint:      rest.GuildMembers(m.guild.ID),
			Authenticated: true,
			Query:         api.Parameter{"limit": fmt.Sprint(memberPageSize), "after": after},
		})
		if err != nil {
			return err
		}

		last := after
		for _, raw := range raws {
			if raw.User == nil {
				continue
			}

			m.add(ctx, raw)
			after = raw.User.ID
		}

		if len(raws) < memberPageSize || after == last {
			return nil
		}
	}
}

// add folds raw into the member cache. The user of the member is shared with
// Client.Users.
func (m *GuildMemberManager) add(ctx context.Context, raw APIMember) *Member {
	if raw.User == nil {
		m.logger.Warnf("Ignore a member of guild %s without user", m.guild.ID)
		return nil
	}

	c := m.guild.client
	c.mu.Lock()
	user := c.patchUser(*raw.User)
	member, ok := m.cache.Get(user.ID)
	if ok {
		member.patch(raw)
	} else {
		member = newMember(m.guild, user, raw)
		m.cache.Set(user.ID, member)
	}
	c.mu.Unlock()

	c.store(ctx, common.RedisKeyUser(user.ID), *raw.User)
	c.store(ctx, common.RedisKeyMember(m.guild.ID, user.ID), raw)
	return member
}

func (m *GuildMemberManager) remove(ctx context.Context, id string) {
	m.cache.Delete(id)
	m.guild.client.forget(ctx, common.RedisKeyMember(m.guild.ID, id))
}
