package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/errorx"
	"golang.org/x/exp/slices"
)

// Member is a user in a guild. User is shared with Client.Users.
type Member struct {
	guild *Guild

	User                       *User
	Nick                       string
	Avatar                     string
	JoinedAt                   time.Time
	PremiumSince               *time.Time
	Deaf                       bool
	Mute                       bool
	Pending                    bool
	Permissions                permission.Bitfield
	CommunicationDisabledUntil *time.Time
	Flags                      int

	roleIDs []string

	Roles *MemberRolesManager
}

func newMember(g *Guild, user *User, raw APIMember) *Member {
	m := &Member{guild: g, User: user}
	m.Roles = &MemberRolesManager{member: m}
	m.patch(raw)
	return m
}

// patch applies a fresh payload. Nick and avatar are only changed when the
// payload carries them.
func (m *Member) patch(raw APIMember) {
	if raw.Nick != nil {
		m.Nick = *raw.Nick
	}

	if raw.Avatar != nil {
		m.Avatar = *raw.Avatar
	}

	if raw.Roles != nil {
		m.roleIDs = slices.Clone(raw.Roles)
	}

	if raw.JoinedAt != nil {
		m.JoinedAt = *raw.JoinedAt
	}

	if raw.Permissions != nil {
		m.Permissions = *raw.Permissions
	}

	m.PremiumSince = raw.PremiumSince
	m.CommunicationDisabledUntil = raw.CommunicationDisabledUntil
	m.Deaf = raw.Deaf
	m.Mute = raw.Mute
	m.Pending = raw.Pending
	m.Flags = raw.Flags
}

func (m *Member) ID() string {
	return m.User.ID
}

func (m *Member) Guild() *Guild {
	return m.guild
}

// RoleIDs returns a copy of the role ids of the member.
func (m *Member) RoleIDs() []string {
	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	return slices.Clone(m.roleIDs)
}

func (m *Member) DisplayName() string {
	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	if m.Nick != "" {
		return m.Nick
	}

	return m.User.displayName()
}

func (m *Member) IsTimedOut(now time.Time) bool {
	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	return m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}

func (m *Member) String() string {
	return fmt.Sprintf("<@%s>", m.ID())
}

// subject needs the state lock of the client.
func (m *Member) subject() permission.Subject {
	return permission.Subject{ID: m.ID(), Ranks: m.Roles.ranks()}
}

// Kickable reports whether the authenticated member can kick m. It is false
// until the authenticated member is cached.
func (m *Member) Kickable() bool {
	me, ok := m.guild.Members.Me()
	if !ok {
		return false
	}

	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	return permission.CanKick(me.subject(), m.subject(), m.guild.OwnerID)
}

// Banneable reports whether the authenticated member can ban m. It is false
// until the authenticated member is cached.
func (m *Member) Banneable() bool {
	me, ok := m.guild.Members.Me()
	if !ok {
		return false
	}

	m.guild.client.mu.RLock()
	defer m.guild.client.mu.RUnlock()
	return permission.CanBan(me.subject(), m.subject(), m.guild.OwnerID)
}

// Edit changes the member. The cached member is patched in place and
// returned.
func (m *Member) Edit(ctx context.Context, opts payload.MemberEditOptions) (*Member, error) {
	p := payload.MemberEdit(opts)
	raw, err := rest.Call[APIMember](ctx, m.guild.client.rest, rest.Request{
		Method:        http.MethodPatch,
		Endpoint:      rest.GuildMember(m.guild.ID, m.ID()),
		Authenticated: true,
		Body:          p,
		Reason:        p.Reason(),
	})
	if err != nil {
		return nil, err
	}

	return m.guild.Members.add(ctx, raw), nil
}

func (m *Member) SetNickname(ctx context.Context, nick, reason string) (*Member, error) {
	return m.Edit(ctx, payload.MemberEditOptions{Nick: &nick, Reason: reason})
}

// Timeout disables the communication of the member until the given time. A
// nil time removes the timeout.
func (m *Member) Timeout(ctx context.Context, until *time.Time, reason string) (*Member, error) {
	return m.Edit(ctx, payload.MemberEditOptions{Timeout: until, ClearTimeout: until == nil, Reason: reason})
}

// Kick removes the member from the guild and drops it from the cache.
func (m *Member) Kick(ctx context.Context, reason string) error {
	_, err := m.guild.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodDelete,
		Endpoint:      rest.GuildMember(m.guild.ID, m.ID()),
		Authenticated: true,
		Reason:        reason,
	})
	if err != nil {
		return err
	}

	m.guild.Members.remove(ctx, m.ID())
	return nil
}

type BanOptions struct {
	DeleteMessageSeconds int
	Reason               string
}

type banBody struct {
	DeleteMessageSeconds int `json:"delete_message_seconds,omitempty"`
}

// Ban bans the member from the guild and drops it from the cache.
func (m *Member) Ban(ctx context.Context, opts BanOptions) error {
	_, err := m.guild.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodPut,
		Endpoint:      rest.GuildBan(m.guild.ID, m.ID()),
		Authenticated: true,
		Body:          banBody{DeleteMessageSeconds: opts.DeleteMessageSeconds},
		Reason:        opts.Reason,
	})
	if err != nil {
		return err
	}

	m.guild.Members.remove(ctx, m.ID())
	return nil
}

// Leave makes the authenticated member leave the guild. It is only valid on
// the authenticated member.
func (m *Member) Leave(ctx context.Context) error {
	if m.ID() != m.guild.client.selfID() {
		return errorx.New(errorx.PermissionDenied, "only the authenticated member can leave the guild")
	}

	return m.guild.Leave(ctx)
}
