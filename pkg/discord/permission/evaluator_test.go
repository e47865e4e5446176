package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHighest(t *testing.T) {
	require.Equal(t, 0, Highest(nil))
	require.Equal(t, 7, Highest([]Rank{{Position: 3}, {Position: 7}, {Position: 1}}))
}

func TestCombined(t *testing.T) {
	require.Equal(t, KickMembers|SendMessages,
		Combined([]Rank{{Permissions: KickMembers}, {Permissions: SendMessages}, {}}))
}

func TestCanKick(t *testing.T) {
	actor := Subject{ID: "actor", Ranks: []Rank{{Permissions: KickMembers, Position: 5}}}

	tests := []struct {
		name    string
		actor   Subject
		target  Subject
		ownerID string
		want    bool
	}{
		{
			name:   "equal position favours the actor",
			actor:  actor,
			target: Subject{ID: "target", Ranks: []Rank{{Position: 5}}},
			want:   true,
		},
		{
			name:   "higher target",
			actor:  actor,
			target: Subject{ID: "target", Ranks: []Rank{{Position: 6}}},
			want:   false,
		},
		{
			name:   "target without roles",
			actor:  actor,
			target: Subject{ID: "target"},
			want:   true,
		},
		{
			name:   "self",
			actor:  actor,
			target: Subject{ID: "actor"},
			want:   false,
		},
		{
			name:    "owner",
			actor:   actor,
			target:  Subject{ID: "owner"},
			ownerID: "owner",
			want:    false,
		},
		{
			name:   "missing permission",
			actor:  Subject{ID: "actor", Ranks: []Rank{{Permissions: BanMembers, Position: 9}}},
			target: Subject{ID: "target"},
			want:   false,
		},
		{
			name: "administrator through another role",
			actor: Subject{ID: "actor", Ranks: []Rank{
				{Permissions: Administrator, Position: 1},
				{Permissions: SendMessages, Position: 4},
			}},
			target: Subject{ID: "target", Ranks: []Rank{{Position: 4}}},
			want:   true,
		},
		{
			name:   "actor without roles",
			actor:  Subject{ID: "actor"},
			target: Subject{ID: "target"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanKick(tt.actor, tt.target, tt.ownerID))
		})
	}
}

func TestCanBan(t *testing.T) {
	actor := Subject{ID: "actor", Ranks: []Rank{{Permissions: BanMembers, Position: 2}}}
	require.True(t, CanBan(actor, Subject{ID: "target", Ranks: []Rank{{Position: 2}}}, "owner"))
	require.False(t, CanBan(actor, Subject{ID: "target", Ranks: []Rank{{Position: 3}}}, "owner"))
	require.False(t, CanKick(actor, Subject{ID: "target"}, "owner"))
}
