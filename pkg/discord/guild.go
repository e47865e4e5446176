package discord

import (
	"context"
	"net/http"

	"github.com/questx-lab/discordx/pkg/discord/rest"
)

type Guild struct {
	client *Client

	ID      string
	Name    string
	Icon    string
	OwnerID string

	Channels *GuildChannelManager
	Roles    *GuildRoleManager
	Members  *GuildMemberManager
}

func newGuild(ctx context.Context, c *Client, raw APIGuild) *Guild {
	g := &Guild{client: c, ID: raw.ID}
	g.patch(raw)

	g.Roles = newGuildRoleManager(g)
	for _, role := range raw.Roles {
		g.Roles.add(ctx, role)
	}

	g.Channels = newGuildChannelManager(g)
	g.Members = newGuildMemberManager(g)

	g.Roles.start(ctx, g.Roles.fetchAll)
	g.Channels.start(ctx, g.Channels.fetchAll)
	g.Members.start(ctx, g.Members.fetchMe)
	return g
}

func (g *Guild) patch(raw APIGuild) {
	if raw.Name != "" {
		g.Name = raw.Name
	}

	if raw.Icon != nil {
		g.Icon = *raw.Icon
	}

	if raw.OwnerID != "" {
		g.OwnerID = raw.OwnerID
	}
}

func (g *Guild) String() string {
	g.client.mu.RLock()
	defer g.client.mu.RUnlock()
	return g.Name
}

// Leave makes the authenticated user leave the guild and drops it from the
// client cache.
func (g *Guild) Leave(ctx context.Context) error {
	_, err := g.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodDelete,
		Endpoint:      rest.CurrentUserGuild(g.ID),
		Authenticated: true,
	})
	if err != nil {
		return err
	}

	g.client.Guilds.Delete(g.ID)
	return nil
}
