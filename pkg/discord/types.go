package discord

import (
	"time"

	"github.com/questx-lab/discordx/pkg/discord/payload"
	"github.com/questx-lab/discordx/pkg/discord/permission"
)

// The API types mirror the JSON objects returned by the service. Entities are
// built from them and patched with them.

type APIUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	GlobalName    *string `json:"global_name"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
	Bot           bool    `json:"bot,omitempty"`
}

type APIRoleTags struct {
	BotID         string `json:"bot_id,omitempty"`
	IntegrationID string `json:"integration_id,omitempty"`
}

type APIRole struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Color        int                 `json:"color"`
	Hoist        bool                `json:"hoist"`
	Icon         *string             `json:"icon"`
	UnicodeEmoji *string             `json:"unicode_emoji"`
	Position     int                 `json:"position"`
	Permissions  permission.Bitfield `json:"permissions"`
	Managed      bool                `json:"managed"`
	Mentionable  bool                `json:"mentionable"`
	Flags        int                 `json:"flags"`
	Tags         *APIRoleTags        `json:"tags,omitempty"`
}

type ChannelType int

const (
	ChannelGuildText          ChannelType = 0
	ChannelDM                 ChannelType = 1
	ChannelGuildVoice         ChannelType = 2
	ChannelGroupDM            ChannelType = 3
	ChannelGuildCategory      ChannelType = 4
	ChannelGuildAnnouncement  ChannelType = 5
	ChannelAnnouncementThread ChannelType = 10
	ChannelPublicThread       ChannelType = 11
	ChannelPrivateThread      ChannelType = 12
	ChannelGuildStageVoice    ChannelType = 13
	ChannelGuildForum         ChannelType = 15
)

type APIThreadMetadata struct {
	Archived            bool   `json:"archived"`
	AutoArchiveDuration int    `json:"auto_archive_duration"`
	Locked              bool   `json:"locked"`
	ArchiveTimestamp    string `json:"archive_timestamp,omitempty"`
}

type APIChannel struct {
	ID               string             `json:"id"`
	Type             ChannelType        `json:"type"`
	GuildID          string             `json:"guild_id,omitempty"`
	Name             string             `json:"name,omitempty"`
	Position         int                `json:"position,omitempty"`
	ParentID         *string            `json:"parent_id,omitempty"`
	Topic            *string            `json:"topic,omitempty"`
	NSFW             bool               `json:"nsfw,omitempty"`
	LastMessageID    *string            `json:"last_message_id,omitempty"`
	Bitrate          int                `json:"bitrate,omitempty"`
	UserLimit        int                `json:"user_limit,omitempty"`
	RTCRegion        *string            `json:"rtc_region,omitempty"`
	RateLimitPerUser int                `json:"rate_limit_per_user,omitempty"`
	OwnerID          string             `json:"owner_id,omitempty"`
	ThreadMetadata   *APIThreadMetadata `json:"thread_metadata,omitempty"`
}

type APIMember struct {
	User                       *APIUser             `json:"user,omitempty"`
	Nick                       *string              `json:"nick"`
	Avatar                     *string              `json:"avatar"`
	Roles                      []string             `json:"roles"`
	JoinedAt                   *time.Time           `json:"joined_at"`
	PremiumSince               *time.Time           `json:"premium_since"`
	Deaf                       bool                 `json:"deaf"`
	Mute                       bool                 `json:"mute"`
	Pending                    bool                 `json:"pending,omitempty"`
	Permissions                *permission.Bitfield `json:"permissions,omitempty"`
	CommunicationDisabledUntil *time.Time           `json:"communication_disabled_until"`
	Flags                      int                  `json:"flags"`
}

type APIGuild struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Icon    *string   `json:"icon"`
	OwnerID string    `json:"owner_id,omitempty"`
	Roles   []APIRole `json:"roles,omitempty"`
}

type APIAttachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
}

type APIMessage struct {
	ID               string                    `json:"id"`
	ChannelID        string                    `json:"channel_id"`
	GuildID          string                    `json:"guild_id,omitempty"`
	Author           *APIUser                  `json:"author,omitempty"`
	Content          string                    `json:"content"`
	Timestamp        time.Time                 `json:"timestamp"`
	EditedTimestamp  *time.Time                `json:"edited_timestamp"`
	TTS              bool                      `json:"tts"`
	MentionEveryone  bool                      `json:"mention_everyone"`
	Embeds           []payload.Embed           `json:"embeds"`
	Components       []payload.Component       `json:"components,omitempty"`
	Attachments      []APIAttachment           `json:"attachments"`
	Flags            int                       `json:"flags,omitempty"`
	WebhookID        string                    `json:"webhook_id,omitempty"`
	MessageReference *payload.MessageReference `json:"message_reference,omitempty"`
}
