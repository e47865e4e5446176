package discord

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/errorx"
	"github.com/stretchr/testify/require"
)

const (
	modRoleID    = "300000000000000001"
	highRoleID   = "300000000000000002"
	adminRoleID  = "300000000000000003"
	kickerRoleID = "300000000000000004"
	equalRoleID  = "300000000000000005"
	targetUserID = "500000000000000001"
)

func testRoles() []APIRole {
	return []APIRole{
		{ID: testGuildID, Name: "@everyone", Position: 0, Permissions: permission.SendMessages},
		{ID: modRoleID, Name: "mod", Position: 5, Permissions: permission.KickMembers},
		{ID: highRoleID, Name: "high", Position: 6},
		{ID: adminRoleID, Name: "admin", Position: 5, Permissions: permission.Administrator},
		{ID: kickerRoleID, Name: "kicker", Position: 1, Permissions: permission.KickMembers | permission.BanMembers},
		{ID: equalRoleID, Name: "equal", Position: 5},
	}
}

func apiMember(id string, roles ...string) APIMember {
	return APIMember{User: &APIUser{ID: id, Username: "user-" + id}, Roles: roles}
}

// newMemberTestGuild returns a guild whose roles are cached and whose
// authenticated member has the given roles.
func newMemberTestGuild(t *testing.T, myRoles ...string) (*Client, *fakeAPI, *rest.MockRequester, *Guild) {
	c, api, requester := newTestClient(t)
	api.reply(http.MethodGet, rest.GuildRoles(testGuildID), testRoles())
	api.reply(http.MethodGet, rest.GuildMember(testGuildID, testBotID), apiMember(testBotID, myRoles...))
	return c, api, requester, newTestGuild(t, c)
}

func TestMember_Kickable(t *testing.T) {
	tests := []struct {
		name      string
		myRoles   []string
		target    APIMember
		kickable  bool
		banneable bool
	}{
		{
			name:     "equal position favours the actor",
			myRoles:  []string{modRoleID},
			target:   apiMember(targetUserID, equalRoleID),
			kickable: true,
		},
		{
			name:    "higher target",
			myRoles: []string{modRoleID},
			target:  apiMember(targetUserID, highRoleID),
		},
		{
			name:     "target without roles",
			myRoles:  []string{kickerRoleID},
			target:   apiMember(targetUserID),
			kickable: true, banneable: true,
		},
		{
			name:    "missing permission",
			myRoles: []string{equalRoleID},
			target:  apiMember(targetUserID),
		},
		{
			name:     "administrator",
			myRoles:  []string{adminRoleID},
			target:   apiMember(targetUserID, equalRoleID),
			kickable: true, banneable: true,
		},
		{
			name:    "owner",
			myRoles: []string{adminRoleID},
			target:  apiMember(testOwnerID),
		},
		{
			name:    "self",
			myRoles: []string{adminRoleID},
			target:  apiMember(testBotID, adminRoleID),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, g := newMemberTestGuild(t, tt.myRoles...)
			_, ok := g.Members.Me()
			require.True(t, ok)

			target := g.Members.add(context.Background(), tt.target)
			require.Equal(t, tt.kickable, target.Kickable())
			require.Equal(t, tt.banneable, target.Banneable())
		})
	}
}

func TestMember_KickableWithoutSelf(t *testing.T) {
	c, api, _ := newTestClient(t)
	api.reply(http.MethodGet, rest.GuildRoles(testGuildID), testRoles())
	g := newTestGuild(t, c)

	_, ok := g.Members.Me()
	require.False(t, ok)

	target := g.Members.add(context.Background(), apiMember(targetUserID))
	require.False(t, target.Kickable())
	require.False(t, target.Banneable())
}

func TestMember_SharedUser(t *testing.T) {
	c, api, _ := newTestClient(t)
	api.reply(http.MethodGet, rest.CurrentUser(), APIUser{ID: testBotID, Username: "bot", Bot: true})
	api.reply(http.MethodGet, rest.GuildMember(testGuildID, testBotID), apiMember(testBotID))

	me, err := c.Login(context.Background())
	require.NoError(t, err)

	g := newTestGuild(t, c)
	member, ok := g.Members.Me()
	require.True(t, ok)
	require.Same(t, me.User, member.User)

	target := g.Members.add(context.Background(), apiMember(targetUserID))
	user, ok := c.Users.Get(targetUserID)
	require.True(t, ok)
	require.Same(t, user, target.User)

	// A fresh payload patches the same instances.
	again := g.Members.add(context.Background(), APIMember{
		User: &APIUser{ID: targetUserID, Username: "renamed"},
		Nick: strPtr("nick"),
	})
	require.Same(t, target, again)
	require.Same(t, user, again.User)
	require.Equal(t, "renamed", user.Username)
	require.Equal(t, "nick", again.DisplayName())

	// A null nick keeps the known one.
	g.Members.add(context.Background(), APIMember{User: &APIUser{ID: targetUserID}})
	require.Equal(t, "nick", target.Nick)
	require.Equal(t, "<@"+targetUserID+">", target.String())
}

func TestMember_RoleIDsAreCopied(t *testing.T) {
	_, _, _, g := newMemberTestGuild(t)
	m := g.Members.add(context.Background(), apiMember(targetUserID, modRoleID))

	ids := m.RoleIDs()
	ids[0] = "changed"
	require.Equal(t, []string{modRoleID}, m.RoleIDs())
}

func TestMember_IsTimedOut(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Minute)
	earlier := now.Add(-time.Minute)

	require.False(t, (&Member{}).IsTimedOut(now))
	require.True(t, (&Member{CommunicationDisabledUntil: &later}).IsTimedOut(now))
	require.False(t, (&Member{CommunicationDisabledUntil: &earlier}).IsTimedOut(now))
}

func TestMember_Edit(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	m := g.Members.add(context.Background(), apiMember(targetUserID))
	endpoint := rest.GuildMember(testGuildID, targetUserID)
	api.handle(http.MethodPatch, endpoint, func(req rest.Request) (*rest.Response, error) {
		return jsonResponse(APIMember{User: &APIUser{ID: targetUserID}, Nick: strPtr("new"), Roles: []string{modRoleID}})
	})

	got, err := m.SetNickname(context.Background(), "new", "asked for it")
	require.NoError(t, err)
	require.Same(t, m, got)
	require.Equal(t, "new", m.Nick)
	require.Equal(t, []string{modRoleID}, m.RoleIDs())

	req := lastRequestTo(t, requester, http.MethodPatch, endpoint)
	require.Equal(t, "asked for it", req.Reason)
	require.True(t, req.Authenticated)
	requireBody(t, `{"nick":"new"}`, req)

	_, err = m.Timeout(context.Background(), nil, "")
	require.NoError(t, err)
	requireBody(t, `{"communication_disabled_until":null}`, lastRequestTo(t, requester, http.MethodPatch, endpoint))

	_, err = m.Edit(context.Background(), payload.MemberEditOptions{Mute: payload.Ptr(true)})
	require.NoError(t, err)
	requireBody(t, `{"mute":true}`, lastRequestTo(t, requester, http.MethodPatch, endpoint))
}

func TestMember_KickAndBan(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	api.reply(http.MethodDelete, rest.GuildMember(testGuildID, targetUserID), nil)
	api.reply(http.MethodPut, rest.GuildBan(testGuildID, targetUserID), nil)

	m := g.Members.add(context.Background(), apiMember(targetUserID))
	require.NoError(t, m.Kick(context.Background(), "spam"))
	require.False(t, g.Members.Cache().Has(targetUserID))
	require.Equal(t, "spam", lastRequestTo(t, requester, http.MethodDelete, rest.GuildMember(testGuildID, targetUserID)).Reason)

	m = g.Members.add(context.Background(), apiMember(targetUserID))
	require.NoError(t, m.Ban(context.Background(), BanOptions{DeleteMessageSeconds: 60, Reason: "raid"}))
	require.False(t, g.Members.Cache().Has(targetUserID))

	req := lastRequestTo(t, requester, http.MethodPut, rest.GuildBan(testGuildID, targetUserID))
	require.Equal(t, "raid", req.Reason)
	requireBody(t, `{"delete_message_seconds":60}`, req)
}

func TestMember_KickFailureKeepsMember(t *testing.T) {
	_, _, _, g := newMemberTestGuild(t)
	m := g.Members.add(context.Background(), apiMember(targetUserID))

	require.True(t, rest.IsNotFound(m.Kick(context.Background(), "")))
	require.True(t, g.Members.Cache().Has(targetUserID))
}

func TestMember_Leave(t *testing.T) {
	c, api, requester, g := newMemberTestGuild(t)
	api.reply(http.MethodDelete, rest.CurrentUserGuild(testGuildID), nil)

	other := g.Members.add(context.Background(), apiMember(targetUserID))
	err := other.Leave(context.Background())
	require.True(t, errorx.Is(err, errorx.PermissionDenied))
	require.Empty(t, requestsTo(requester, http.MethodDelete, rest.CurrentUserGuild(testGuildID)))

	me, _ := g.Members.Me()
	require.NoError(t, me.Leave(context.Background()))
	require.False(t, c.Guilds.Has(testGuildID))
}

func TestMemberRolesManager(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	m := g.Members.add(context.Background(), apiMember(targetUserID, highRoleID, "999999999999999999", modRoleID))

	require.Equal(t, []string{highRoleID, modRoleID}, m.Roles.Cache().Keys())
	require.True(t, m.Roles.Has(modRoleID))
	require.False(t, m.Roles.Has(adminRoleID))

	highest, ok := m.Roles.Highest()
	require.True(t, ok)
	require.Equal(t, highRoleID, highest.ID)
	require.Equal(t, permission.KickMembers, m.Roles.Permissions())

	// The view follows the guild role cache.
	modRole, _ := g.Roles.Cache().Get(modRoleID)
	modRole.Position = 9
	highest, _ = m.Roles.Highest()
	require.Same(t, modRole, highest)

	roleless := g.Members.add(context.Background(), apiMember("500000000000000002"))
	_, ok = roleless.Roles.Highest()
	require.False(t, ok)
	require.Zero(t, roleless.Roles.Permissions())

	// An invalid id refreshes every role of the guild.
	before := len(requestsTo(requester, http.MethodGet, rest.GuildRoles(testGuildID)))
	roles, err := m.Roles.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []string{highRoleID, modRoleID}, roles.Keys())
	require.Len(t, requestsTo(requester, http.MethodGet, rest.GuildRoles(testGuildID)), before+1)

	// A valid id fetches the single role into the guild cache.
	api.reply(http.MethodGet, rest.GuildRole(testGuildID, adminRoleID), APIRole{ID: adminRoleID, Name: "renamed", Position: 5})
	roles, err = m.Roles.Fetch(context.Background(), adminRoleID)
	require.NoError(t, err)
	role, _ := roles.Get(adminRoleID)
	cached, _ := g.Roles.Cache().Get(adminRoleID)
	require.Same(t, cached, role)
	require.Equal(t, "renamed", role.Name)
}

func TestMemberRolesManager_AddRemove(t *testing.T) {
	_, api, requester, g := newMemberTestGuild(t)
	m := g.Members.add(context.Background(), apiMember(targetUserID))
	endpoint := rest.GuildMemberRole(testGuildID, targetUserID, modRoleID)
	api.reply(http.MethodPut, endpoint, nil)
	api.reply(http.MethodDelete, endpoint, nil)

	api.reply(http.MethodGet, rest.GuildMember(testGuildID, targetUserID), apiMember(targetUserID, modRoleID))
	got, err := m.Roles.Add(context.Background(), modRoleID, "promote")
	require.NoError(t, err)
	require.Same(t, m, got)
	require.True(t, m.Roles.Has(modRoleID))
	require.Equal(t, "promote", lastRequestTo(t, requester, http.MethodPut, endpoint).Reason)

	api.reply(http.MethodGet, rest.GuildMember(testGuildID, targetUserID), APIMember{
		User:  &APIUser{ID: targetUserID},
		Roles: []string{},
	})
	_, err = m.Roles.Remove(context.Background(), modRoleID, "")
	require.NoError(t, err)
	require.False(t, m.Roles.Has(modRoleID))
}

func TestGuildMemberManager_FetchAll(t *testing.T) {
	c, api, requester := newTestClient(t)
	api.handle(http.MethodGet, rest.GuildMembers(testGuildID), func(req rest.Request) (*rest.Response, error) {
		if req.Query["after"] == "0" {
			return jsonResponse([]APIMember{apiMember(targetUserID), apiMember("500000000000000002")})
		}
		return jsonResponse([]APIMember{})
	})
	g := newTestGuild(t, c)

	members, err := g.Members.Fetch(context.Background(), "all")
	require.NoError(t, err)
	require.Equal(t, []string{targetUserID, "500000000000000002"}, members.Keys())
	require.Equal(t, "1000", lastRequestTo(t, requester, http.MethodGet, rest.GuildMembers(testGuildID)).Query["limit"])
	require.Equal(t, StatePopulated, g.Members.State())
}
