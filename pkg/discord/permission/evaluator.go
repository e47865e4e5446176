package permission

import (
	mathUtil "github.com/pkg/math"
)

// Rank is the part of a role that matters for hierarchy checks.
type Rank struct {
	Permissions Bitfield
	Position    int
}

// Subject is a guild member reduced to its identity and resolved roles.
type Subject struct {
	ID    string
	Ranks []Rank
}

// Combined ORs the permissions of all ranks.
func Combined(ranks []Rank) Bitfield {
	var total Bitfield
	for _, r := range ranks {
		total |= r.Permissions
	}
	return total
}

// Highest returns the greatest position among ranks, 0 when there is none.
func Highest(ranks []Rank) int {
	highest := 0
	for _, r := range ranks {
		highest = mathUtil.MaxInt(highest, r.Position)
	}
	return highest
}

// Can reports whether actor may apply action to target in a guild owned by
// ownerID. The actor needs the action bit or Administrator, cannot target
// itself or the owner, and must rank at least as high as the target.
func Can(action Bitfield, actor, target Subject, ownerID string) bool {
	if !Combined(actor.Ranks).Any(action | Administrator) {
		return false
	}

	if target.ID == actor.ID {
		return false
	}

	if target.ID == ownerID {
		return false
	}

	return Highest(target.Ranks) <= Highest(actor.Ranks)
}

func CanKick(actor, target Subject, ownerID string) bool {
	return Can(KickMembers, actor, target, ownerID)
}

func CanBan(actor, target Subject, ownerID string) bool {
	return Can(BanMembers, actor, target, ownerID)
}
