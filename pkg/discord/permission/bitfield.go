package permission

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Bitfield is a set of guild permissions. The service encodes it as a decimal
// string.
type Bitfield uint64

const (
	CreateInstantInvite Bitfield = 1 << iota
	KickMembers
	BanMembers
	Administrator
	ManageChannels
	ManageGuild
	AddReactions
	ViewAuditLog
	PrioritySpeaker
	Stream
	ViewChannel
	SendMessages
	SendTTSMessages
	ManageMessages
	EmbedLinks
	AttachFiles
	ReadMessageHistory
	MentionEveryone
	UseExternalEmojis
	ViewGuildInsights
	Connect
	Speak
	MuteMembers
	DeafenMembers
	MoveMembers
	UseVAD
	ChangeNickname
	ManageNicknames
	ManageRoles
	ManageWebhooks
	ManageGuildExpressions
	UseApplicationCommands
	RequestToSpeak
	ManageEvents
	ManageThreads
	CreatePublicThreads
	CreatePrivateThreads
	UseExternalStickers
	SendMessagesInThreads
	UseEmbeddedActivities
	ModerateMembers
)

func Combine(bits ...Bitfield) Bitfield {
	var result Bitfield
	for _, b := range bits {
		result |= b
	}
	return result
}

// Has reports whether every bit of p is set.
func (b Bitfield) Has(p Bitfield) bool {
	return b&p == p
}

// Any reports whether at least one bit of p is set.
func (b Bitfield) Any(p Bitfield) bool {
	return b&p != 0
}

func (b Bitfield) Add(p Bitfield) Bitfield {
	return b | p
}

func (b Bitfield) Remove(p Bitfield) Bitfield {
	return b &^ p
}

func (b Bitfield) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

func Parse(s string) (Bitfield, error) {
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid permission bitfield %q: %w", s, err)
	}

	return Bitfield(v), nil
}

func (b Bitfield) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts both the string and the numeric encoding.
func (b *Bitfield) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := Parse(s)
		if err != nil {
			return err
		}

		*b = v
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid permission bitfield %s", data)
	}

	*b = Bitfield(n)
	return nil
}
