package discord

import (
	"context"
	"net/http"
	"testing"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestGuildRoleManager(t *testing.T) {
	_, _, _, g := newMemberTestGuild(t)
	require.Equal(t, StatePopulated, g.Roles.State())
	require.Equal(t, 6, g.Roles.Cache().Len())

	everyone, ok := g.Roles.Everyone()
	require.True(t, ok)
	require.Equal(t, "@everyone", everyone.Mention())
	require.Equal(t, permission.SendMessages, everyone.Permissions)

	mod, _ := g.Roles.Cache().Get(modRoleID)
	require.Equal(t, "<@&"+modRoleID+">", mod.String())

	sorted := g.Roles.Sorted()
	require.Len(t, sorted, 6)
	require.Equal(t, highRoleID, sorted[0].ID)
	require.Equal(t, testGuildID, sorted[len(sorted)-1].ID)
}

func TestRole_Edit(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	endpoint := rest.GuildRole(testGuildID, modRoleID)
	api.reply(http.MethodPatch, endpoint, APIRole{ID: modRoleID, Name: "moderator", Position: 5, Permissions: permission.ManageRoles})

	role, _ := g.Roles.Cache().Get(modRoleID)
	tests := []struct {
		name string
		edit func() (*Role, error)
		body string
	}{
		{
			name: "name",
			edit: func() (*Role, error) { return role.SetName(context.Background(), "moderator", "rename") },
			body: `{"name":"moderator"}`,
		},
		{
			name: "color",
			edit: func() (*Role, error) { return role.SetColor(context.Background(), 0, "") },
			body: `{"color":0}`,
		},
		{
			name: "hoist",
			edit: func() (*Role, error) { return role.SetHoist(context.Background(), false, "") },
			body: `{"hoist":false}`,
		},
		{
			name: "mentionable",
			edit: func() (*Role, error) { return role.SetMentionable(context.Background(), true, "") },
			body: `{"mentionable":true}`,
		},
		{
			name: "permissions",
			edit: func() (*Role, error) { return role.SetPermissions(context.Background(), permission.ManageRoles, "") },
			body: `{"permissions":"` + permission.ManageRoles.String() + `"}`,
		},
		{
			name: "icon",
			edit: func() (*Role, error) { return role.SetIcon(context.Background(), "data:image/png;base64,AAAA", "") },
			body: `{"icon":"data:image/png;base64,AAAA"}`,
		},
		{
			name: "emoji",
			edit: func() (*Role, error) { return role.SetEmoji(context.Background(), "🔥", "") },
			body: `{"unicode_emoji":"🔥"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.edit()
			require.NoError(t, err)
			require.Same(t, role, got)
			require.Equal(t, "moderator", role.Name)
			require.Equal(t, permission.ManageRoles, role.Permissions)
			requireBody(t, tt.body, lastRequestTo(t, requester, http.MethodPatch, endpoint))
		})
	}

	require.Equal(t, "rename", requestsTo(requester, http.MethodPatch, endpoint)[0].Reason)
}

func TestRole_SetPosition(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	endpoint := rest.GuildRoles(testGuildID)
	api.reply(http.MethodPatch, endpoint, []APIRole{
		{ID: testGuildID, Name: "@everyone", Position: 0},
		{ID: modRoleID, Name: "mod", Position: 7},
		{ID: highRoleID, Name: "high", Position: 5},
	})

	role, _ := g.Roles.Cache().Get(modRoleID)
	high, _ := g.Roles.Cache().Get(highRoleID)

	got, err := role.SetPosition(context.Background(), 7, "")
	require.NoError(t, err)
	require.Same(t, role, got)
	require.Equal(t, 7, role.Position)
	require.Equal(t, 5, high.Position)
	requireBody(t, `[{"id":"`+modRoleID+`","position":7}]`, lastRequestTo(t, requester, http.MethodPatch, endpoint))
}

func TestRole_Delete(t *testing.T) {
	var forgotten []string
	redis := &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, keys ...string) error {
			forgotten = append(forgotten, keys...)
			return nil
		},
	}

	c, api, _ := newTestClient(t, WithMirror(NewRedisMirror(redis, 0)))
	api.reply(http.MethodGet, rest.GuildRoles(testGuildID), testRoles())
	api.reply(http.MethodDelete, rest.GuildRole(testGuildID, modRoleID), nil)
	g := newTestGuild(t, c)

	role, _ := g.Roles.Cache().Get(modRoleID)
	require.NoError(t, role.Delete(context.Background(), "cleanup"))
	require.False(t, g.Roles.Cache().Has(modRoleID))
	require.Equal(t, []string{common.RedisKeyRole(testGuildID, modRoleID)}, forgotten)

	// A failed delete keeps the role.
	high, _ := g.Roles.Cache().Get(highRoleID)
	require.True(t, rest.IsNotFound(high.Delete(context.Background(), "")))
	require.True(t, g.Roles.Cache().Has(highRoleID))
}
