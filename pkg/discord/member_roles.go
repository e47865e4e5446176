package discord

import (
	"context"
	"net/http"

	"github.com/questx-lab/discordx/pkg/collection"
	"github.com/questx-lab/discordx/pkg/discord/permission"
	"github.com/questx-lab/discordx/pkg/discord/rest"
	"github.com/questx-lab/discordx/pkg/idutil"
	"golang.org/x/exp/slices"
)

// MemberRolesManager is a view of the roles of a member resolved against the
// role cache of the guild. It owns no role.
type MemberRolesManager struct {
	member *Member
}

// Cache resolves the role ids of the member in their order. Unknown ids are
// skipped.
func (m *MemberRolesManager) Cache() *collection.Collection[string, *Role] {
	m.member.guild.client.mu.RLock()
	defer m.member.guild.client.mu.RUnlock()
	return m.resolved()
}

func (m *MemberRolesManager) Has(roleID string) bool {
	m.member.guild.client.mu.RLock()
	defer m.member.guild.client.mu.RUnlock()
	return slices.Contains(m.member.roleIDs, roleID)
}

// Highest returns the resolved role with the greatest position.
func (m *MemberRolesManager) Highest() (*Role, bool) {
	m.member.guild.client.mu.RLock()
	defer m.member.guild.client.mu.RUnlock()

	var highest *Role
	m.resolved().Range(func(_ string, role *Role) bool {
		if highest == nil || role.Position > highest.Position {
			highest = role
		}
		return true
	})

	return highest, highest != nil
}

// Permissions combines the permissions of the resolved roles.
func (m *MemberRolesManager) Permissions() permission.Bitfield {
	m.member.guild.client.mu.RLock()
	defer m.member.guild.client.mu.RUnlock()
	return permission.Combined(m.ranks())
}

// resolved needs the state lock of the client.
func (m *MemberRolesManager) resolved() *collection.Collection[string, *Role] {
	roles := m.member.guild.Roles.Cache()
	result := collection.New[string, *Role]()
	for _, id := range m.member.roleIDs {
		if role, ok := roles.Get(id); ok {
			result.Set(id, role)
		}
	}

	return result
}

// ranks leaves the everyone role out unless the member lists it. It needs the
// state lock of the client.
func (m *MemberRolesManager) ranks() []permission.Rank {
	var ranks []permission.Rank
	m.resolved().Range(func(_ string, role *Role) bool {
		ranks = append(ranks, role.rank())
		return true
	})

	return ranks
}

// Fetch refreshes the roles of the guild when id is not a valid id and returns
// the resolved view, or fetches the single role otherwise.
func (m *MemberRolesManager) Fetch(ctx context.Context, id string) (*collection.Collection[string, *Role], error) {
	if !idutil.IsValidID(id) {
		if _, err := m.member.guild.Roles.Fetch(ctx, ""); err != nil {
			return nil, err
		}

		return m.Cache(), nil
	}

	return m.member.guild.Roles.Fetch(ctx, id)
}

// Add gives a role to the member, then refreshes the member.
func (m *MemberRolesManager) Add(ctx context.Context, roleID, reason string) (*Member, error) {
	return m.change(ctx, http.MethodPut, roleID, reason)
}

// Remove takes a role from the member, then refreshes the member.
func (m *MemberRolesManager) Remove(ctx context.Context, roleID, reason string) (*Member, error) {
	return m.change(ctx, http.MethodDelete, roleID, reason)
}

func (m *MemberRolesManager) change(ctx context.Context, method, roleID, reason string) (*Member, error) {
	guild := m.member.guild
	_, err := guild.client.rest.Request(ctx, rest.Request{
		Method:        method,
		Endpoint:      rest.GuildMemberRole(guild.ID, m.member.ID(), roleID),
		Authenticated: true,
		Reason:        reason,
	})
	if err != nil {
		return nil, err
	}

	members, err := guild.Members.Fetch(ctx, m.member.ID())
	if err != nil {
		return nil, err
	}

	member, _ := members.Get(m.member.ID())
	return member, nil
}
