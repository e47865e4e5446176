package discord

import (
	"context"
	"fmt"
	"net/http"

	"github.com/questx-lab/discordx/internal/common"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
)

type Role struct {
	guild *Guild

	ID           string
	Name         string
	Color        int
	Hoist        bool
	Icon         string
	UnicodeEmoji string
	Position     int
	Permissions  permission.Bitfield
	Managed      bool
	Mentionable  bool
	Flags        int
	Tags         *APIRoleTags
}

func newRole(g *Guild, raw APIRole) *Role {
	r := &Role{guild: g, ID: raw.ID}
	r.patch(raw)
	return r
}

func (r *Role) patch(raw APIRole) {
	r.Name = raw.Name
	r.Color = raw.Color
	r.Hoist = raw.Hoist
	r.Icon = ""
	if raw.Icon != nil {
		r.Icon = *raw.Icon
	}

	r.UnicodeEmoji = ""
	if raw.UnicodeEmoji != nil {
		r.UnicodeEmoji = *raw.UnicodeEmoji
	}

	r.Position = raw.Position
	r.Permissions = raw.Permissions
	r.Managed = raw.Managed
	r.Mentionable = raw.Mentionable
	r.Flags = raw.Flags
	r.Tags = raw.Tags
}

func (r *Role) rank() permission.Rank {
	return permission.Rank{Permissions: r.Permissions, Position: r.Position}
}

func (r *Role) Mention() string {
	if r.ID == r.guild.ID {
		return "@everyone"
	}

	return fmt.Sprintf("<@&%s>", r.ID)
}

func (r *Role) String() string {
	return r.Mention()
}

type RoleEditOptions struct {
	Name         *string              `json:"name,omitempty"`
	Permissions  *permission.Bitfield `json:"permissions,omitempty"`
	Color        *int                 `json:"color,omitempty"`
	Hoist        *bool                `json:"hoist,omitempty"`
	Icon         *string              `json:"icon,omitempty"`
	UnicodeEmoji *string              `json:"unicode_emoji,omitempty"`
	Mentionable  *bool                `json:"mentionable,omitempty"`

	Reason string `json:"-"`
}

// Edit changes the role. The cached role is patched in place and returned.
func (r *Role) Edit(ctx context.Context, opts RoleEditOptions) (*Role, error) {
	raw, err := rest.Call[APIRole](ctx, r.guild.client.rest, rest.Request{
		Method:        http.MethodPatch,
		Endpoint:      rest.GuildRole(r.guild.ID, r.ID),
		Authenticated: true,
		Body:          opts,
		Reason:        opts.Reason,
	})
	if err != nil {
		return nil, err
	}

	return r.guild.Roles.add(ctx, raw), nil
}

func (r *Role) SetName(ctx context.Context, name, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Name: &name, Reason: reason})
}

func (r *Role) SetColor(ctx context.Context, color int, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Color: &color, Reason: reason})
}

func (r *Role) SetHoist(ctx context.Context, hoist bool, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Hoist: &hoist, Reason: reason})
}

func (r *Role) SetMentionable(ctx context.Context, mentionable bool, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Mentionable: &mentionable, Reason: reason})
}

func (r *Role) SetPermissions(ctx context.Context, permissions permission.Bitfield, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Permissions: &permissions, Reason: reason})
}

// SetIcon takes an image data URI.
func (r *Role) SetIcon(ctx context.Context, icon, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{Icon: &icon, Reason: reason})
}

func (r *Role) SetEmoji(ctx context.Context, emoji, reason string) (*Role, error) {
	return r.Edit(ctx, RoleEditOptions{UnicodeEmoji: &emoji, Reason: reason})
}

type rolePosition struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// SetPosition moves the role. The service answers with every role of the
// guild, and all of them are patched.
func (r *Role) SetPosition(ctx context.Context, position int, reason string) (*Role, error) {
	raws, err := rest.Call[[]APIRole](ctx, r.guild.client.rest, rest.Request{
		Method:        http.MethodPatch,
		Endpoint:      rest.GuildRoles(r.guild.ID),
		Authenticated: true,
		Body:          []rolePosition{{ID: r.ID, Position: position}},
		Reason:        reason,
	})
	if err != nil {
		return nil, err
	}

	for _, raw := range raws {
		r.guild.Roles.add(ctx, raw)
	}

	return r, nil
}

// Delete deletes the role and drops it from the guild cache.
func (r *Role) Delete(ctx context.Context, reason string) error {
	_, err := r.guild.client.rest.Request(ctx, rest.Request{
		Method:        http.MethodDelete,
		Endpoint:      rest.GuildRole(r.guild.ID, r.ID),
		Authenticated: true,
		Reason:        reason,
	})
	if err != nil {
		return err
	}

	r.guild.Roles.cache.Delete(r.ID)
	r.guild.client.forget(ctx, common.RedisKeyRole(r.guild.ID, r.ID))
	return nil
}
